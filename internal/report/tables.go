// Package report renders store contents as flat tables and exports them to
// blob storage.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"devicecore/internal/core"
	"devicecore/pkg/domain"
)

// Kind names a report table.
type Kind string

// Full-field tables, one per entity kind, plus the two dashboard reports.
const (
	KindFacilities      Kind = "facilities"
	KindDevices         Kind = "devices"
	KindInstallations   Kind = "installations"
	KindServiceVisits   Kind = "service_visits"
	KindContracts       Kind = "contracts"
	KindAlerts          Kind = "alerts"
	KindDevicesReport   Kind = "devices_report"
	KindContractsReport Kind = "contracts_report"
)

// Kinds lists every report kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindFacilities, KindDevices, KindInstallations, KindServiceVisits,
		KindContracts, KindAlerts, KindDevicesReport, KindContractsReport,
	}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

// Table is a rendered report: a header row plus string cells.
type Table struct {
	Kind    Kind
	Columns []string
	Rows    [][]string
}

// Build renders kind from a snapshot.
func Build(kind Kind, snap core.Snapshot) (Table, error) {
	switch kind {
	case KindFacilities:
		return FacilitiesTable(snap.Facilities), nil
	case KindDevices:
		return DevicesTable(snap.Devices), nil
	case KindInstallations:
		return InstallationsTable(snap.Installations), nil
	case KindServiceVisits:
		return ServiceVisitsTable(snap.ServiceVisits), nil
	case KindContracts:
		return ContractsTable(snap.Contracts), nil
	case KindAlerts:
		return AlertsTable(snap.Alerts), nil
	case KindDevicesReport:
		return DevicesReport(snap.Devices), nil
	case KindContractsReport:
		return ContractsReport(snap.Contracts), nil
	}
	return Table{}, fmt.Errorf("unknown report kind %q", kind)
}

// FacilitiesTable lists every facility field.
func FacilitiesTable(facilities []domain.Facility) Table {
	t := Table{Kind: KindFacilities, Columns: []string{
		"id", "name", "address", "city", "state", "zip",
		"contact_person", "contact_email", "contact_phone", "last_visit_date",
	}}
	for _, f := range facilities {
		t.Rows = append(t.Rows, []string{
			f.ID, f.Name, f.Address, f.City, f.State, f.Zip,
			f.Contact.Person, f.Contact.Email, f.Contact.Phone, f.LastVisitDate.String(),
		})
	}
	return t
}

// DevicesTable lists every device field.
func DevicesTable(devices []domain.Device) Table {
	t := Table{Kind: KindDevices, Columns: []string{
		"id", "type", "model", "serial_number", "facility_id", "facility_name", "status",
		"battery_level", "last_service_date", "installation_date", "amc_status", "cmc_status",
		"location", "assigned_engineer",
	}}
	for _, d := range devices {
		t.Rows = append(t.Rows, []string{
			d.ID, d.Type, d.Model, d.SerialNumber, d.FacilityID, d.FacilityName, string(d.Status),
			strconv.Itoa(d.BatteryLevel), d.LastServiceDate.String(), d.InstallationDate.String(),
			string(d.AMCStatus), string(d.CMCStatus), d.Location, d.AssignedEngineer,
		})
	}
	return t
}

// InstallationsTable lists installations with checklist progress as "done/total".
func InstallationsTable(installations []domain.Installation) Table {
	t := Table{Kind: KindInstallations, Columns: []string{
		"id", "device_id", "device_type", "facility_id", "facility_name", "installation_date",
		"engineer", "status", "checklist", "training_completed", "training_notes",
	}}
	for _, i := range installations {
		done, total := i.Progress()
		t.Rows = append(t.Rows, []string{
			i.ID, i.DeviceID, i.DeviceType, i.FacilityID, i.FacilityName, i.InstallationDate.String(),
			i.Engineer, string(i.Status), fmt.Sprintf("%d/%d", done, total),
			strconv.FormatBool(i.TrainingCompleted), i.TrainingNotes,
		})
	}
	return t
}

// ServiceVisitsTable lists every visit; issues are joined with "; ".
func ServiceVisitsTable(visits []domain.ServiceVisit) Table {
	t := Table{Kind: KindServiceVisits, Columns: []string{
		"id", "device_id", "device_type", "facility_id", "facility_name", "visit_date", "engineer",
		"purpose", "status", "notes", "time_spent", "issues_found", "resolution_notes",
	}}
	for _, v := range visits {
		t.Rows = append(t.Rows, []string{
			v.ID, v.DeviceID, v.DeviceType, v.FacilityID, v.FacilityName, v.VisitDate.String(), v.Engineer,
			string(v.Purpose), string(v.Status), v.Notes, formatNumber(v.TimeSpent),
			strings.Join(v.IssuesFound, "; "), v.ResolutionNotes,
		})
	}
	return t
}

// ContractsTable lists every contract field.
func ContractsTable(contracts []domain.Contract) Table {
	t := Table{Kind: KindContracts, Columns: []string{
		"id", "device_id", "device_type", "facility_id", "facility_name", "contract_type",
		"start_date", "end_date", "status", "value", "terms", "renewal_date",
		"contact_person", "contact_email", "contact_phone",
	}}
	for _, c := range contracts {
		t.Rows = append(t.Rows, []string{
			c.ID, c.DeviceID, c.DeviceType, c.FacilityID, c.FacilityName, string(c.ContractType),
			c.StartDate.String(), c.EndDate.String(), string(c.Status), formatNumber(c.Value), c.Terms,
			c.RenewalDate.String(), c.Contact.Person, c.Contact.Email, c.Contact.Phone,
		})
	}
	return t
}

// AlertsTable lists every alert field.
func AlertsTable(alerts []domain.Alert) Table {
	t := Table{Kind: KindAlerts, Columns: []string{
		"id", "device_id", "device_type", "facility_id", "facility_name", "alert_type",
		"severity", "message", "created_date", "status", "assigned_to", "resolution_notes",
	}}
	for _, a := range alerts {
		t.Rows = append(t.Rows, []string{
			a.ID, a.DeviceID, a.DeviceType, a.FacilityID, a.FacilityName, a.AlertType,
			string(a.Severity), a.Message, a.CreatedDate.String(), string(a.Status), a.AssignedTo, a.ResolutionNotes,
		})
	}
	return t
}

// DevicesReport is the inventory export. Pass a filtered slice to export a
// search result.
func DevicesReport(devices []domain.Device) Table {
	t := Table{Kind: KindDevicesReport, Columns: []string{
		"ID", "Type", "Model", "Facility", "Status", "Battery %", "Last Service", "AMC Status",
	}}
	for _, d := range devices {
		t.Rows = append(t.Rows, []string{
			d.ID, d.Type, d.Model, d.FacilityName, string(d.Status),
			strconv.Itoa(d.BatteryLevel), d.LastServiceDate.String(), string(d.AMCStatus),
		})
	}
	return t
}

// ContractsReport is the contract tracker export.
func ContractsReport(contracts []domain.Contract) Table {
	t := Table{Kind: KindContractsReport, Columns: []string{
		"Contract ID", "Device Type", "Facility", "Type", "Start Date", "End Date", "Status", "Value", "Contact Person",
	}}
	for _, c := range contracts {
		t.Rows = append(t.Rows, []string{
			c.ID, c.DeviceType, c.FacilityName, string(c.ContractType), c.StartDate.String(),
			c.EndDate.String(), string(c.Status), formatNumber(c.Value), c.Contact.Person,
		})
	}
	return t
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
