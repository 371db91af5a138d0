// Package report renders analysis results for humans: a colorized
// terminal summary built on go-pretty tables, and an HTML chart page
// built on go-echarts.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/chatfang/pkg/processors"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/basic"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/personality"
)

// topParticipantsLimit caps the participants table.
const topParticipantsLimit = 15

// msgNoResults is printed when the result map is empty.
const msgNoResults = "No analysis results available"

// Renderer writes terminal reports.
type Renderer struct {
	colorize bool
}

// NewRenderer creates a terminal renderer. With colorize false all output
// is plain text.
func NewRenderer(colorize bool) *Renderer {
	return &Renderer{colorize: colorize}
}

// Render writes a full report for the result map. Sections for absent
// result keys are skipped silently, matching the partial-failure contract
// of the pipeline.
func (r *Renderer) Render(w io.Writer, results map[string]processors.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(w, msgNoResults)

		return nil
	}

	if result, ok := results[basic.Type]; ok {
		if stats, ok := result.Data.(basic.Stats); ok {
			r.renderStats(w, stats)
		}
	}

	if result, ok := results[personality.Type]; ok {
		if profiles, ok := result.Data.(personality.Profiles); ok {
			r.renderProfiles(w, profiles)
		}
	}

	return nil
}

func (r *Renderer) heading(w io.Writer, text string) {
	if r.colorize {
		color.New(color.FgCyan, color.Bold).Fprintln(w, text)

		return
	}

	fmt.Fprintln(w, text)
}

func (r *Renderer) renderStats(w io.Writer, stats basic.Stats) {
	r.heading(w, "Chat overview")

	tbl := newTable(w)
	tbl.AppendRows([]table.Row{
		{"Messages", humanize.Comma(int64(stats.TotalMessages))},
		{"Participants", len(stats.Participants)},
		{"Media messages", humanize.Comma(int64(stats.MediaCount))},
		{"Late-night share", fmt.Sprintf("%d%%", stats.LateNightPercentage)},
	})

	if stats.AverageMessageLength != nil {
		tbl.AppendRow(table.Row{
			"Avg message length",
			fmt.Sprintf("%s chars", humanize.FtoaWithDigits(*stats.AverageMessageLength, 1)),
		})
	}

	if stats.MostActiveDate != nil {
		tbl.AppendRow(table.Row{
			"Most active day",
			fmt.Sprintf("%s (%d messages)", stats.MostActiveDate.Date, stats.MostActiveDate.Count),
		})
	}

	tbl.Render()
	fmt.Fprintln(w)

	r.renderParticipants(w, stats)
}

func (r *Renderer) renderParticipants(w io.Writer, stats basic.Stats) {
	if len(stats.Participants) == 0 {
		return
	}

	r.heading(w, "Participants")

	type row struct {
		name  string
		count int
	}

	rows := make([]row, 0, len(stats.MessagesByParticipant))
	for _, name := range stats.Participants {
		rows = append(rows, row{name: name, count: stats.MessagesByParticipant[name]})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].count > rows[j].count })

	if len(rows) > topParticipantsLimit {
		rows = rows[:topParticipantsLimit]
	}

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Participant", "Messages", "Share"})

	for _, item := range rows {
		share := 0.0
		if stats.TotalMessages > 0 {
			share = float64(item.count) / float64(stats.TotalMessages) * 100
		}

		tbl.AppendRow(table.Row{
			item.name,
			humanize.Comma(int64(item.count)),
			fmt.Sprintf("%s%%", humanize.FtoaWithDigits(share, 1)),
		})
	}

	tbl.Render()
	fmt.Fprintln(w)
}

func (r *Renderer) renderProfiles(w io.Writer, profiles personality.Profiles) {
	if len(profiles) == 0 {
		return
	}

	r.heading(w, "Personality profiles")

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Participant", "Class", "Pattern", "Style", "Role", "Abilities"})

	for _, name := range names {
		profile := profiles[name]

		tbl.AppendRow(table.Row{
			name,
			fmt.Sprintf("%s %s", profile.CharacterClass.Icon, profile.CharacterClass.Name),
			profile.Traits.ActivityPattern,
			profile.Traits.CommunicationStyle,
			profile.Traits.GroupRole,
			strings.Join(profile.SpecialAbilities, ", "),
		})
	}

	tbl.Render()
	fmt.Fprintln(w)

	r.renderAchievements(w, names, profiles)
}

func (r *Renderer) renderAchievements(w io.Writer, names []string, profiles personality.Profiles) {
	r.heading(w, "Achievements")

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Participant", "Achievement", "Progress", "Unlocked"})

	for _, name := range names {
		for _, a := range profiles[name].Achievements {
			unlocked := ""
			if a.UnlockedAt != nil {
				unlocked = humanize.Time(*a.UnlockedAt)
			}

			tbl.AppendRow(table.Row{
				name,
				fmt.Sprintf("%s %s", a.Icon, a.Name),
				fmt.Sprintf("%d%%", a.Progress),
				unlocked,
			})
		}
	}

	tbl.Render()
	fmt.Fprintln(w)
}

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	return tbl
}
