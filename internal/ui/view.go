package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"lotpulse-tui/internal/api"
	"lotpulse-tui/internal/theme"
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	var body string
	switch m.screen {
	case screenDashboard:
		body = m.viewDashboard()
	case screenAdd:
		body = m.viewAdd()
	case screenDetail:
		body = m.viewDetail()
	}

	page := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(0, 2)
	return page.Render(body)
}

// Dashboard

func (m Model) viewDashboard() string {
	t := theme.Default

	header := m.viewHeader()

	if m.dashLoadErr != nil {
		failure := lipgloss.NewStyle().Foreground(t.Error).Render(
			"Dashboard failed to load: " + m.dashLoadErr.Error())
		hint := lipgloss.NewStyle().Foreground(t.Muted).Render("R reload · q quit")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", failure, "", hint)
	}

	if !m.dashLoaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			m.spinner.View()+" Loading inventory...")
	}

	if m.showHistory {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewAlarmHistory(), "", m.viewStatusBar())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.viewKPIRow(),
		"",
		m.viewAlarmCard(),
		"",
		m.table.View(),
		"",
		m.viewStatusBar(),
	)
}

func (m Model) viewHeader() string {
	t := theme.Default
	banner := strings.Join(figure.NewFigure("LotPulse", "small", false).Slicify(), "\n")
	title := theme.GradientText(banner, t.Primary, t.Accent)
	sub := lipgloss.NewStyle().Foreground(t.Muted).Render("30-60-90 inventory intelligence")
	return lipgloss.JoinVertical(lipgloss.Left, title, sub)
}

func (m Model) viewKPIRow() string {
	t := theme.Default

	totalUnits := len(m.dash.Vehicles)
	var totalValue float64
	var totalDays int
	for _, v := range m.dash.Vehicles {
		totalValue += v.ListPrice
		totalDays += v.DaysInInventory
	}
	avgDays := 0
	if totalUnits > 0 {
		avgDays = totalDays / totalUnits
	}

	atRisk, danger := 0, 0
	for _, ins := range m.dash.Insights {
		if ins.AgingClass == nil {
			continue
		}
		switch *ins.AgingClass {
		case api.AgingAtRisk:
			atRisk++
		case api.AgingDanger:
			danger++
		}
	}

	cards := []string{
		kpiCard("Units", fmt.Sprintf("%d", totalUnits), t.Primary),
		kpiCard("List value", formatUSD(totalValue), t.Info),
		kpiCard("Avg days", fmt.Sprintf("%d", avgDays), t.Subtext),
		kpiCard("At risk", fmt.Sprintf("%d", atRisk), t.Warning),
		kpiCard("Danger", fmt.Sprintf("%d", danger), t.Error),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func kpiCard(label, value string, accent lipgloss.Color) string {
	t := theme.Default
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		MarginRight(1)
	val := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(value)
	lbl := lipgloss.NewStyle().Foreground(t.Muted).Render(label)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, val, lbl))
}

// viewAlarmCard renders the latest fleet alarm; with no alarm fetched the
// row stays at its empty state and the rest of the dashboard is unaffected.
func (m Model) viewAlarmCard() string {
	t := theme.Default
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(m.width - 6)

	if m.dash.Alarm == nil {
		return box.Render(lipgloss.NewStyle().Foreground(t.Muted).
			Render("No floorplan alarm yet — press A to run one."))
	}

	a := m.dash.Alarm
	head := lipgloss.NewStyle().Foreground(t.Warning).Bold(true).
		Render(fmt.Sprintf("Floorplan alarm %s", a.AlarmDate))
	burn := fmt.Sprintf("burn %s/day · 30d %s · 60d %s · underwater %d",
		formatUSD(a.TotalDailyBurn), formatUSD(a.ProjectedBurn30),
		formatUSD(a.ProjectedBurn60), len(a.UnderwaterVehicles))
	summary := lipgloss.NewStyle().Foreground(t.Subtext).Width(m.width - 10).
		Render(a.ExecutiveSummary)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, head,
		lipgloss.NewStyle().Foreground(t.Text).Render(burn), summary))
}

func (m Model) viewAlarmHistory() string {
	t := theme.Default
	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("Alarm history")
	if len(m.alarmHistory) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			lipgloss.NewStyle().Foreground(t.Muted).Render("No alarms recorded."),
			"", lipgloss.NewStyle().Foreground(t.Muted).Render("esc close"))
	}

	var lines []string
	for _, a := range m.alarmHistory {
		lines = append(lines, fmt.Sprintf("%s  units %-3d  burn %s/day  30d %s",
			a.AlarmDate, a.TotalActiveUnits, formatUSD(a.TotalDailyBurn), formatUSD(a.ProjectedBurn30)))
	}
	body := lipgloss.NewStyle().Foreground(t.Text).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, title, body, "",
		lipgloss.NewStyle().Foreground(t.Muted).Render("esc close"))
}

func (m Model) viewStatusBar() string {
	t := theme.Default

	status := m.dashStatus
	if m.dashBusy != dashIdle {
		status = m.spinner.View() + " " + status
	}
	help := "enter open · a add · A alarm · z analyze all · H history · e export · R reload · q quit"

	var parts []string
	if status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Info).Render(status))
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(t.Muted).Render(help))
	return strings.Join(parts, "\n")
}

// Add form

func (m Model) viewAdd() string {
	t := theme.Default

	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("Add vehicle by VIN")
	form := lipgloss.JoinVertical(lipgloss.Left,
		fieldLabel("VIN", m.addFocus == 0)+m.vinInput.View(),
		fieldLabel("List price", m.addFocus == 1)+m.priceInput.View(),
		fieldLabel("Acquisition cost", m.addFocus == 2)+m.costInput.View(),
	)

	var errLine string
	if m.addErr != "" {
		errLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.addErr)
	}

	busy := ""
	if m.addBusy {
		busy = m.spinner.View() + " Submitting..."
	}

	help := lipgloss.NewStyle().Foreground(t.Muted).
		Render("enter submit · tab next field · esc back")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", form, "", errLine, busy, "", help)
}

func fieldLabel(label string, focused bool) string {
	t := theme.Default
	style := lipgloss.NewStyle().Foreground(t.Muted).Width(18)
	if focused {
		style = style.Foreground(t.Primary).Bold(true)
	}
	return style.Render(label)
}

// Detail

func (m Model) viewDetail() string {
	t := theme.Default

	if m.detailLoadErr != nil {
		// Mandatory vehicle fetch failed; terminal for this screen.
		reason := "Vehicle could not be loaded: " + m.detailLoadErr.Error()
		if api.IsNotFound(m.detailLoadErr) {
			reason = fmt.Sprintf("Vehicle %d not found.", m.selectedID)
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(t.Error).Render(reason),
			"",
			lipgloss.NewStyle().Foreground(t.Muted).Render("esc back · q quit"))
	}

	if !m.detailLoaded {
		return m.spinner.View() + " Loading vehicle..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewDetailHeader(),
		m.viewTabBar(),
		"",
		m.viewport.View(),
		"",
		m.viewDetailStatus(),
	)
}

func (m Model) viewDetailHeader() string {
	t := theme.Default
	v := m.detail.Vehicle

	title := lipgloss.NewStyle().Foreground(t.Text).Bold(true).
		Render(vehicleLabel(v.Year, v.Make, v.Model, v.Trim))
	vin := lipgloss.NewStyle().Foreground(t.Muted).Render("  " + v.VIN)

	kpis := fmt.Sprintf("%s · %d days · %d mi", formatUSD(v.ListPrice), v.DaysInInventory, v.Mileage)
	line2 := lipgloss.NewStyle().Foreground(t.Subtext).Render(kpis)

	var badges []string
	if r := m.detail.Report; r != nil && !m.detail.CurveOnly {
		badges = append(badges, badge(r.AgingClass, t.AgingColor(r.AgingClass)))
		badges = append(badges, badge(r.PriceAction, t.PriceActionColor(r.PriceAction)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title+vin,
		line2+" "+strings.Join(badges, " "),
	)
}

func (m Model) viewTabBar() string {
	t := theme.Default
	var tabs []string
	for tab := detailTab(0); tab < tabCount; tab++ {
		style := lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1)
		if tab == m.tab {
			style = style.Foreground(t.Text).Background(t.Overlay).Bold(true)
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", int(tab)+1, tab)))
	}
	return strings.Join(tabs, " ")
}

func (m Model) viewDetailStatus() string {
	t := theme.Default
	status := m.detailStatus
	if m.reanalyzingID != 0 || m.applyingStep != 0 {
		status = m.spinner.View() + " " + status
	}

	help := "1-5 tabs · r re-analyze · esc back"
	if m.tab == tabWaterfall {
		help = "j/k step · enter apply · " + help
	}

	var parts []string
	if status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Info).Render(status))
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(t.Muted).Render(help))
	return strings.Join(parts, "\n")
}

func (m Model) renderDetailContent() string {
	switch m.tab {
	case tabAnalysis:
		return m.renderAnalysisTab()
	case tabCurve:
		return m.renderCurveTab()
	case tabComps:
		return m.renderCompsTab()
	case tabWaterfall:
		return m.renderWaterfallTab()
	case tabHistory:
		return m.renderHistoryTab()
	}
	return ""
}

func (m Model) renderAnalysisTab() string {
	t := theme.Default
	r := m.detail.Report

	if r == nil || m.detail.CurveOnly {
		msg := "Analysis unavailable — press r to re-analyze."
		if m.detail.NoAnalysisYet {
			msg = "No analysis yet for this vehicle — press r to run one."
		} else if m.detail.CurveOnly {
			msg = "Fresh analysis unavailable; showing the last 90-day curve on tab 2."
		}
		return lipgloss.NewStyle().Foreground(t.Muted).Render(msg + "\n\n" + m.renderSignals())
	}

	probs := fmt.Sprintf("P30 %s   P60 %s   P90 %s   confidence %s",
		formatPct(r.P30), formatPct(r.P60), formatPct(r.P90), r.Confidence)

	carry := fmt.Sprintf("Carry %s/day · 30d %s · 60d %s · 90d %s · inflection day %d",
		formatUSD(r.DailyCarryCost), formatUSD(r.CarryCost30),
		formatUSD(r.CarryCost60), formatUSD(r.CarryCost90), r.InflectionDay)

	erosion := fmt.Sprintf("Margin erosion 30/60/90: %s / %s / %s",
		formatUSD(r.MarginErosion30), formatUSD(r.MarginErosion60), formatUSD(r.MarginErosion90))

	pricing := fmt.Sprintf("Pricing: %s %s (lift %s, gross impact %s) · elasticity %s",
		r.PriceAction, formatUSD(r.PriceChangeAmount), formatPct(r.PriceActionLiftP),
		formatUSD(r.PriceActionGrossImpact), r.PriceElasticity)

	exit := fmt.Sprintf("Exit: %s — gross %s in ~%.0f days",
		r.OptimalExit, formatUSD(r.ExitExpectedGross), r.ExitExpectedDays)

	sections := []string{
		sectionTitle("Probabilities"), probs,
		"",
		sectionTitle("Carry cost"), carry, erosion,
		"",
		sectionTitle("Strategy"), pricing,
		lipgloss.NewStyle().Foreground(t.Muted).Render(r.ElasticityReason),
		exit,
		lipgloss.NewStyle().Foreground(t.Muted).Render(r.ExitReason),
	}

	if len(r.ActionPlan) > 0 {
		sections = append(sections, "", sectionTitle("Action plan"))
		for i, a := range r.ActionPlan {
			sections = append(sections, fmt.Sprintf("%d. %s", i+1, a))
		}
	}
	if len(r.Risks) > 0 {
		sections = append(sections, "", sectionTitle("Risks"))
		for _, risk := range r.Risks {
			sections = append(sections, lipgloss.NewStyle().Foreground(t.Warning).Render("! ")+risk)
		}
	}
	if len(r.ChangeTriggers) > 0 {
		sections = append(sections, "", sectionTitle("Change triggers"))
		for _, trig := range r.ChangeTriggers {
			sections = append(sections, "· "+trig)
		}
	}

	sections = append(sections, "", m.renderSignals())
	return strings.Join(sections, "\n")
}

func (m Model) renderSignals() string {
	t := theme.Default
	s := m.detail.Signals
	if s == nil {
		return ""
	}
	return sectionTitle("Demand signals") + "\n" +
		fmt.Sprintf("views %d (7d %d) · leads %d (7d %d) · test drives %d",
			s.ViewsTotal, s.ViewsLast7, s.LeadsTotal, s.LeadsLast7, s.TestDrives) +
		notesLine(t, s.Notes)
}

func notesLine(t theme.Theme, notes string) string {
	if notes == "" {
		return ""
	}
	return "\n" + lipgloss.NewStyle().Foreground(t.Muted).Render(notes)
}

func (m Model) renderCurveTab() string {
	t := theme.Default
	r := m.detail.Report
	if r == nil || len(r.DailyCurve) == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted).
			Render("No 90-day curve available — press r to re-analyze.")
	}

	cumulative := make([]float64, len(r.DailyCurve))
	for i, p := range r.DailyCurve {
		cumulative[i] = p.CumulativeSellProbability
	}

	inflection := -1
	if !m.detail.CurveOnly && r.InflectionDay > 0 {
		inflection = r.InflectionDay
	}

	chartWidth := m.width - 8
	chart := renderCurveChart(cumulative, chartWidth, 8, inflection, t.Primary, t.Error)

	last := r.DailyCurve[len(r.DailyCurve)-1]
	footer := fmt.Sprintf("day %d: cumulative %s · floorplan to date %s · gross erosion %s",
		last.Day, formatPct(last.CumulativeSellProbability),
		formatUSD(last.FloorplanCostToDate), formatUSD(last.GrossErosionToDate))

	lines := []string{
		sectionTitle("Cumulative sell probability, 90 days"),
		chart,
		lipgloss.NewStyle().Foreground(t.Muted).Render("day 1" +
			strings.Repeat(" ", max(1, chartWidth-10)) + "day 90"),
		"",
		lipgloss.NewStyle().Foreground(t.Subtext).Render(footer),
	}
	if inflection > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).
			Render(fmt.Sprintf("Red area: holding past day %d is uneconomical.", inflection)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCompsTab() string {
	t := theme.Default
	var sections []string

	if s := m.detail.CompSummary; s != nil {
		prices := fmt.Sprintf("median %s · low %s · high %s · median days to sale %s",
			formatUSDPtr(s.MedianPrice), formatUSDPtr(s.LowPrice),
			formatUSDPtr(s.HighPrice), formatFloatOrDash(s.MedianDaysToSale))
		market := fmt.Sprintf("demand score %.1f · %s · %d auto / %d manual comps",
			s.DemandScore, s.SupplyVsDemand, s.AutoCount, s.ManualCount)
		sections = append(sections, sectionTitle("Market summary"), prices, market)
		if s.DiscrepancyFlag {
			sections = append(sections,
				lipgloss.NewStyle().Foreground(t.Warning).Render("! "+s.DiscrepancyNote),
				lipgloss.NewStyle().Foreground(t.Muted).Render(s.WeightReason))
		}
	} else {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Muted).
			Render("No comp summary — press r to refresh comps."))
	}

	sections = append(sections, "", sectionTitle(fmt.Sprintf("Listings (%d)", len(m.comps))))
	if len(m.comps) == 0 {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Muted).Render("No comparable listings."))
		return strings.Join(sections, "\n")
	}

	for _, c := range m.comps {
		price := formatUSD(c.Price)
		if c.SoldPrice != nil {
			price += " → sold " + formatUSD(*c.SoldPrice)
		}
		line := fmt.Sprintf("%-6s %-28s %7d mi  %-24s %3dd  %5.0f mi  %s",
			c.Source, vehicleLabel(c.Year, c.Make, c.Model, c.Trim),
			c.Mileage, price, c.DaysOnMarket, c.DistanceMiles, c.ListingStatus)
		style := lipgloss.NewStyle().Foreground(t.Text)
		if c.ListingStatus == "sold" {
			style = style.Foreground(t.Success)
		} else if c.ListingStatus == "delisted" {
			style = style.Foreground(t.Muted)
		}
		sections = append(sections, style.Render(line))
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderWaterfallTab() string {
	t := theme.Default
	p := m.detail.Plan
	if p == nil {
		return lipgloss.NewStyle().Foreground(t.Muted).
			Render("No waterfall plan — press r to re-analyze.")
	}

	head := fmt.Sprintf("Current %s · total cost %s · wholesale exit %s",
		formatUSD(p.CurrentPrice), formatUSD(p.TotalCost), formatUSD(p.WholesaleExitPrice))

	lines := []string{sectionTitle("Price waterfall"), head, ""}
	for i, s := range p.Steps {
		cursor := "  "
		if i == m.stepCursor {
			cursor = lipgloss.NewStyle().Foreground(t.Primary).Render("> ")
		}
		applying := ""
		if m.applyingStep == s.Step {
			applying = " " + m.spinner.View()
		}

		row := fmt.Sprintf("%sStep %d  %s → %s (%s)  lift %s  saves %.1fd  floor %s%s",
			cursor, s.Step, formatUSD(s.CurrentPrice), formatUSD(s.NewPrice),
			formatUSD(s.DollarChange), formatPct(s.ExpectedProbabilityLift),
			s.ExpectedDaysSaved, formatUSD(s.PriceFloor), applying)

		style := lipgloss.NewStyle().Foreground(t.Text)
		if s.StopReached() {
			style = style.Foreground(t.Error)
		}
		lines = append(lines, style.Render(row))
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Muted).
			Render("    "+s.TriggerCondition+" · "+s.StopCondition))
	}

	lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Subtext).Render(p.Recommendation))
	return strings.Join(lines, "\n")
}

func (m Model) renderHistoryTab() string {
	t := theme.Default
	if len(m.detail.Events) == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted).Render("No price events recorded.")
	}

	// Creation order, oldest first.
	lines := []string{sectionTitle("Price change audit trail")}
	for _, e := range m.detail.Events {
		change := fmt.Sprintf("%s → %s", formatUSD(e.OldPrice), formatUSD(e.NewPrice))
		head := fmt.Sprintf("%s  %-20s %-24s by %s", e.CreatedAt, e.EventType, change, e.TriggeredBy)
		lines = append(lines,
			lipgloss.NewStyle().Foreground(t.Text).Render(head),
			lipgloss.NewStyle().Foreground(t.Muted).Render("    "+e.Reason))
	}
	return strings.Join(lines, "\n")
}

// Shared rendering helpers

func sectionTitle(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Default.Primary).Bold(true).Render(s)
}

func badge(text string, color lipgloss.Color) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.Default.Base).
		Background(color).
		Padding(0, 1).
		Render(text)
}

func vehicleLabel(year int, make_, model, trim string) string {
	parts := make([]string, 0, 4)
	if year > 0 {
		parts = append(parts, fmt.Sprintf("%d", year))
	}
	for _, p := range []string{make_, model, trim} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "(unknown vehicle)"
	}
	return strings.Join(parts, " ")
}

func formatUSD(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}

func formatUSDPtr(v *float64) string {
	if v == nil {
		return "—"
	}
	return formatUSD(*v)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func formatPctPtr(v *float64) string {
	if v == nil {
		return "—"
	}
	return formatPct(*v)
}

func formatFloatOrDash(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f", *v)
}

func stringOrDash(v *string) string {
	if v == nil {
		return "—"
	}
	return *v
}
