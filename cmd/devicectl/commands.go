package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"devicecore/internal/derive"
	"devicecore/internal/report"
	"devicecore/pkg/domain"
)

var errUsage = errors.New("usage")

func subcommand(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
}

func (a *app) dashboard(ctx context.Context) error {
	p := a.printer
	summary, err := a.svc.DashboardSummary(ctx)
	if err != nil {
		return err
	}
	p.Fprintf(a.stdout, "Dashboard for %s\n\n", a.svc.Today())
	p.Fprintf(a.stdout, "Devices      %d (%d online)\n", summary.TotalDevices, summary.OnlineDevices)
	p.Fprintf(a.stdout, "Facilities   %d\n", summary.Facilities)
	p.Fprintf(a.stdout, "Open alerts  %d\n", summary.OpenAlerts)
	p.Fprintf(a.stdout, "Contracts    %d (%d expiring soon)\n\n", summary.TotalContracts, summary.ExpiringContracts)

	tally, err := a.svc.DeviceStatusTally(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Device status")
	for _, e := range tally.Entries() {
		p.Fprintf(a.stdout, "  %-12s %d\n", e.Status, e.Count)
	}

	alerts, err := a.svc.OpenAlertsSummary(ctx, 0)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "\nOpen alerts")
	w := a.table()
	for _, al := range alerts {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", al.ID, al.Severity, al.DeviceType, al.FacilityName, al.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	expiring, err := a.svc.ExpiringContracts(ctx, 0)
	if err != nil {
		return err
	}
	p.Fprintf(a.stdout, "\nContracts ending within %d days\n", a.svc.Views().ExpiryWindowDays)
	if err := a.printContracts(expiring); err != nil {
		return err
	}

	drift, err := a.svc.ContractStatusDrift(ctx)
	if err != nil {
		return err
	}
	if len(drift) > 0 {
		fmt.Fprintln(a.stdout, "\nContract status drift")
		for _, d := range drift {
			fmt.Fprintf(a.stdout, "  %s stored %q, derived %q\n", d.Contract.ID, d.Contract.Status, d.Derived)
		}
	}

	activity, err := a.svc.RecentActivity(ctx, 0)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "\nRecent activity")
	w = a.table()
	for _, e := range activity {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", e.Date, e.Kind, e.ID, e.Status, e.Description)
	}
	return w.Flush()
}

func (a *app) devices(ctx context.Context, args []string, stderr io.Writer) error {
	fs := subcommand("devices", stderr)
	term := fs.String("q", "", "match type, model or facility name")
	status := fs.String("status", "", "filter by status")
	facility := fs.String("facility", "", "only devices at this facility id")
	lowBattery := fs.Bool("low-battery", false, "only devices in the low battery band")
	export := fs.Bool("export", false, "store the listed devices as an inventory report")
	format := fs.String("format", "csv", "export format")
	if err := parse(fs, args); err != nil {
		return err
	}
	st := domain.DeviceStatus(*status)
	if st != "" && !st.Valid() {
		return fmt.Errorf("unknown status %q", *status)
	}
	var devices []domain.Device
	var err error
	switch {
	case *facility != "":
		devices, err = a.svc.DevicesAtFacility(ctx, *facility)
	case *lowBattery:
		devices, err = a.svc.LowBatteryDevices(ctx)
	default:
		devices, err = a.svc.SearchDevices(ctx, *term, st)
	}
	if err != nil {
		return err
	}
	if *facility != "" && *lowBattery {
		devices = derive.LowBatteryDevices(devices)
	}
	if *facility != "" || *lowBattery {
		devices = derive.SearchDevices(devices, *term, st)
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tTYPE\tMODEL\tFACILITY\tSTATUS\tBATTERY\tAMC")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d%%\t%s\n", d.ID, d.Type, d.Model, d.FacilityName, d.Status, d.BatteryLevel, d.AMCStatus)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !*export {
		return nil
	}
	f, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}
	artifact, err := a.exporter.ExportDevices(ctx, devices, f)
	if err != nil {
		return err
	}
	a.printArtifact(artifact)
	return nil
}

func (a *app) alerts(ctx context.Context, args []string, stderr io.Writer) error {
	fs := subcommand("alerts", stderr)
	status := fs.String("status", string(domain.AlertOpen), "Open, Acknowledged or Resolved")
	bySeverity := fs.Bool("by-severity", false, "list Critical alerts first")
	if err := parse(fs, args); err != nil {
		return err
	}
	st := domain.AlertStatus(*status)
	if !st.Valid() {
		return fmt.Errorf("unknown status %q", *status)
	}
	counts, err := a.svc.AlertStatusCounts(ctx)
	if err != nil {
		return err
	}
	alerts, err := a.svc.AlertsByStatus(ctx, st)
	if err != nil {
		return err
	}
	if *bySeverity {
		alerts = derive.SortBySeverity(alerts)
	}
	a.printer.Fprintf(a.stdout, "Open %d  Acknowledged %d  Resolved %d\n\n", counts.Open, counts.Acknowledged, counts.Resolved)
	w := a.table()
	fmt.Fprintln(w, "ID\tSEVERITY\tDEVICE\tFACILITY\tCREATED\tASSIGNED\tMESSAGE")
	for _, al := range alerts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", al.ID, al.Severity, al.DeviceID, al.FacilityName, al.CreatedDate, al.AssignedTo, al.Message)
	}
	return w.Flush()
}

func (a *app) contracts(ctx context.Context, args []string, stderr io.Writer) error {
	fs := subcommand("contracts", stderr)
	window := fs.Int("window", 0, "days ahead to include (default from DEVICECORE_EXPIRY_WINDOW_DAYS)")
	if err := parse(fs, args); err != nil {
		return err
	}
	contracts, err := a.svc.ExpiringContracts(ctx, *window)
	if err != nil {
		return err
	}
	return a.printContracts(contracts)
}

func (a *app) printContracts(contracts []domain.Contract) error {
	w := a.table()
	for _, c := range contracts {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.ContractType, c.FacilityName, c.EndDate, c.Status, a.printer.Sprintf("%.2f", c.Value))
	}
	return w.Flush()
}

func (a *app) export(ctx context.Context, args []string, stderr io.Writer) error {
	fs := subcommand("export", stderr)
	kind := fs.String("kind", string(report.KindDevicesReport), "report kind")
	format := fs.String("format", "csv", "csv or json")
	if err := parse(fs, args); err != nil {
		return err
	}
	k, err := report.ParseKind(*kind)
	if err != nil {
		return err
	}
	f, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}
	artifact, err := a.exporter.Export(ctx, k, f)
	if err != nil {
		return err
	}
	a.printArtifact(artifact)
	return nil
}

func (a *app) printArtifact(artifact report.Artifact) {
	a.printer.Fprintf(a.stdout, "exported %s (%d rows, %d bytes) to %s\n", artifact.Kind, artifact.Rows, artifact.SizeBytes, artifact.Key)
	if artifact.URL != "" {
		fmt.Fprintf(a.stdout, "download: %s\n", artifact.URL)
	}
}
