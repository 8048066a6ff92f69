package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haskel/voltfox/internal/decision"
	"github.com/haskel/voltfox/internal/policy"
)

// View renders the dashboard
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderTitleBar())

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sections = append(sections, m.renderBattery())
	sections = append(sections, m.renderControl())
	sections = append(sections, m.renderValueTable())
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := titleStyle.Render("VOLTFOX DASHBOARD")

	state := fmt.Sprintf("cycle %d", m.cycles)
	if m.paused {
		state = "paused"
	}

	help := helpStyle.Render("q:quit space:pause d:disturb r:reset")

	rightPart := fmt.Sprintf("%s | %s", state, help)
	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(rightPart) - 2
	if spacing < 1 {
		spacing = 1
	}

	return fmt.Sprintf("%s%s%s", title, strings.Repeat(" ", spacing), helpStyle.Render(rightPart))
}

func (m Model) renderBattery() string {
	r := m.reading

	socBar := m.renderChargeBar("SoC", r.SoC, 24)

	// Normalize the voltage bar over the pack's usable span.
	vSpan := (r.Voltage - decision.EmptyVoltage) / (decision.FullVoltage - decision.EmptyVoltage) * 100
	vBar := m.renderChargeBar("V", vSpan, 24)

	lines := []string{
		sectionHeaderStyle.Render("  Battery"),
		fmt.Sprintf("  %s  %s", socBar, valueStyle.Render(fmt.Sprintf("%5.1f%%", r.SoC))),
		fmt.Sprintf("  %s  %s", vBar, valueStyle.Render(fmt.Sprintf("%.3f V", r.Voltage))),
		fmt.Sprintf("  %s %s   %s %s",
			labelStyle.Render("temp"), valueStyle.Render(fmt.Sprintf("%.1f C", r.Temperature)),
			labelStyle.Render("true draw"), valueStyle.Render(fmt.Sprintf("%.2f A", r.Current))),
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderControl() string {
	d := m.last

	mode := lowModeStyle.Render("LOW")
	if d.PowerMode == decision.PowerModeHigh {
		mode = highModeStyle.Render("HIGH")
	}

	disturbance := labelStyle.Render("none")
	if m.reading.Disturbance || m.forced {
		disturbance = disturbanceStyle.Render("ACTIVE")
		if m.forced {
			disturbance = disturbanceStyle.Render("FORCED")
		}
	}

	dutyBar := m.renderChargeBar("duty", d.Duty*100, 24)

	lines := []string{
		sectionHeaderStyle.Render("  Control"),
		fmt.Sprintf("  %s  %s", dutyBar, valueStyle.Render(fmt.Sprintf("%.2f", d.Duty))),
		fmt.Sprintf("  %s %s   %s %s   %s %s",
			labelStyle.Render("mode"), mode,
			labelStyle.Render("disturbance"), disturbance,
			labelStyle.Render("i_est"), valueStyle.Render(fmt.Sprintf("%.2f A", d.Current))),
		fmt.Sprintf("  %s %s   %s %s",
			labelStyle.Render("action"), chosenActionStyle.Render(m.manager.LastAction().String()),
			labelStyle.Render("r_est"), valueStyle.Render(fmt.Sprintf("%.3f ohm", m.manager.Estimator().Resistance()))),
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderValueTable() string {
	learner := m.manager.Learner()

	var lines []string
	lines = append(lines, sectionHeaderStyle.Render("  Learned values"))

	header := fmt.Sprintf("  %-6s", "bin")
	for _, a := range policy.Actions() {
		header += fmt.Sprintf(" %12s", a.String())
	}
	lines = append(lines, labelStyle.Render(header))

	for _, bin := range policy.Bins() {
		row := fmt.Sprintf("  %-6d", bin)
		for _, a := range policy.Actions() {
			row += fmt.Sprintf(" %12.4f", learner.Value(bin, a))
		}
		lines = append(lines, valueStyle.Render(row))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderChargeBar(label string, percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	color := getChargeColor(percent)
	filledBar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyBar := progressBarEmptyStyle.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s [%s%s]", labelStyle.Render(fmt.Sprintf("%-4s", label)), filledBar, emptyBar)
}

func (m Model) renderFooter() string {
	return helpStyle.Render(fmt.Sprintf("  seed %d | %d cycles/tick | %s per tick",
		m.config.Seed, m.config.StepsPerTick, m.config.Interval))
}
