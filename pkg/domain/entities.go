// Package domain defines the entities, value types, error kinds, and rule
// evaluation primitives used by devicecore.
package domain

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and error reports.
const (
	// EntityFacility identifies a facility hosting devices.
	EntityFacility EntityType = "facility"
	// EntityDevice identifies a medical device record.
	EntityDevice EntityType = "device"
	// EntityInstallation identifies a device installation record.
	EntityInstallation EntityType = "installation"
	// EntityServiceVisit identifies an engineer service visit.
	EntityServiceVisit EntityType = "service_visit"
	// EntityContract identifies an AMC/CMC maintenance contract.
	EntityContract EntityType = "contract"
	// EntityAlert identifies a device alert.
	EntityAlert EntityType = "alert"
)

// EntityTypes lists every kind in canonical order.
func EntityTypes() []EntityType {
	return []EntityType{EntityFacility, EntityDevice, EntityInstallation, EntityServiceVisit, EntityContract, EntityAlert}
}

// DeviceStatus is the operational state of a device.
type DeviceStatus string

// Device statuses, in canonical tally order.
const (
	DeviceOnline      DeviceStatus = "Online"
	DeviceOffline     DeviceStatus = "Offline"
	DeviceMaintenance DeviceStatus = "Maintenance"
)

// DeviceStatuses returns the canonical category order used by status tallies.
func DeviceStatuses() []DeviceStatus {
	return []DeviceStatus{DeviceOnline, DeviceOffline, DeviceMaintenance}
}

// Valid reports whether s is a declared device status.
func (s DeviceStatus) Valid() bool {
	switch s {
	case DeviceOnline, DeviceOffline, DeviceMaintenance:
		return true
	}
	return false
}

// WorkStatus tracks scheduled field work (installations and service visits).
type WorkStatus string

// Work statuses shared by installations and service visits.
const (
	WorkScheduled  WorkStatus = "Scheduled"
	WorkInProgress WorkStatus = "In Progress"
	WorkCompleted  WorkStatus = "Completed"
	WorkCancelled  WorkStatus = "Cancelled"
)

// Valid reports whether s is a declared work status.
func (s WorkStatus) Valid() bool {
	switch s {
	case WorkScheduled, WorkInProgress, WorkCompleted, WorkCancelled:
		return true
	}
	return false
}

// VisitPurpose classifies why an engineer visited a device.
type VisitPurpose string

// Service visit purposes.
const (
	PurposePreventive   VisitPurpose = "Preventive"
	PurposeBreakdown    VisitPurpose = "Breakdown"
	PurposeInstallation VisitPurpose = "Installation"
	PurposeTraining     VisitPurpose = "Training"
)

// Valid reports whether p is a declared visit purpose.
func (p VisitPurpose) Valid() bool {
	switch p {
	case PurposePreventive, PurposeBreakdown, PurposeInstallation, PurposeTraining:
		return true
	}
	return false
}

// ContractType distinguishes annual from comprehensive maintenance contracts.
type ContractType string

// Contract types.
const (
	ContractAMC ContractType = "AMC"
	ContractCMC ContractType = "CMC"
)

// Valid reports whether t is a declared contract type.
func (t ContractType) Valid() bool {
	return t == ContractAMC || t == ContractCMC
}

// ContractStatus is the stored lifecycle label of a contract. Devices reuse it
// for their AMC/CMC summary fields.
type ContractStatus string

// Contract statuses.
const (
	ContractActive       ContractStatus = "Active"
	ContractExpiringSoon ContractStatus = "Expiring Soon"
	ContractExpired      ContractStatus = "Expired"
)

// Valid reports whether s is a declared contract status.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractExpiringSoon, ContractExpired:
		return true
	}
	return false
}

// AlertSeverity ranks alert urgency.
type AlertSeverity string

// Alert severities, lowest first.
const (
	SeverityLow      AlertSeverity = "Low"
	SeverityMedium   AlertSeverity = "Medium"
	SeverityHigh     AlertSeverity = "High"
	SeverityCritical AlertSeverity = "Critical"
)

// Valid reports whether s is a declared alert severity.
func (s AlertSeverity) Valid() bool {
	return s.Rank() > 0
}

// Rank orders severities from 1 (Low) to 4 (Critical); undeclared values rank 0.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// AlertStatus tracks alert handling.
type AlertStatus string

// Alert statuses, in tab order.
const (
	AlertOpen         AlertStatus = "Open"
	AlertAcknowledged AlertStatus = "Acknowledged"
	AlertResolved     AlertStatus = "Resolved"
)

// AlertStatuses returns alert statuses in display order.
func AlertStatuses() []AlertStatus {
	return []AlertStatus{AlertOpen, AlertAcknowledged, AlertResolved}
}

// Valid reports whether s is a declared alert status.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertOpen, AlertAcknowledged, AlertResolved:
		return true
	}
	return false
}

// Contact is a named person reachable by email and phone.
type Contact struct {
	Person string `json:"person" yaml:"person"`
	Email  string `json:"email" yaml:"email"`
	Phone  string `json:"phone" yaml:"phone"`
}

// Facility is a site hosting devices. Its device count is derived, never stored.
type Facility struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Address       string  `json:"address" yaml:"address"`
	City          string  `json:"city" yaml:"city"`
	State         string  `json:"state" yaml:"state"`
	Zip           string  `json:"zip" yaml:"zip"`
	Contact       Contact `json:"contact" yaml:"contact"`
	LastVisitDate Date    `json:"last_visit_date" yaml:"last_visit_date"`
}

// Device is a tracked medical device. FacilityName is a snapshot of the
// parent facility's name taken when FacilityID was last written.
type Device struct {
	ID               string         `json:"id" yaml:"id"`
	Type             string         `json:"type" yaml:"type"`
	Model            string         `json:"model" yaml:"model"`
	SerialNumber     string         `json:"serial_number" yaml:"serial_number"`
	FacilityID       string         `json:"facility_id" yaml:"facility_id"`
	FacilityName     string         `json:"facility_name" yaml:"facility_name"`
	Status           DeviceStatus   `json:"status" yaml:"status"`
	BatteryLevel     int            `json:"battery_level" yaml:"battery_level"`
	LastServiceDate  Date           `json:"last_service_date" yaml:"last_service_date"`
	InstallationDate Date           `json:"installation_date" yaml:"installation_date"`
	AMCStatus        ContractStatus `json:"amc_status" yaml:"amc_status"`
	CMCStatus        ContractStatus `json:"cmc_status" yaml:"cmc_status"`
	Location         string         `json:"location" yaml:"location"`
	AssignedEngineer string         `json:"assigned_engineer" yaml:"assigned_engineer"`
}

// DeviceContext carries the display fields copied from a device (and its
// facility) onto dependent records.
type DeviceContext struct {
	DeviceType   string `json:"device_type" yaml:"device_type"`
	FacilityID   string `json:"facility_id" yaml:"facility_id"`
	FacilityName string `json:"facility_name" yaml:"facility_name"`
}

// ChecklistItem is one step of an installation checklist.
type ChecklistItem struct {
	Item      string `json:"item" yaml:"item"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Installation records a device being commissioned at its facility.
type Installation struct {
	ID                string `json:"id" yaml:"id"`
	DeviceID          string `json:"device_id" yaml:"device_id"`
	DeviceContext     `yaml:",inline"`
	InstallationDate  Date            `json:"installation_date" yaml:"installation_date"`
	Engineer          string          `json:"engineer" yaml:"engineer"`
	Status            WorkStatus      `json:"status" yaml:"status"`
	Checklist         []ChecklistItem `json:"checklist" yaml:"checklist"`
	TrainingCompleted bool            `json:"training_completed" yaml:"training_completed"`
	TrainingNotes     string          `json:"training_notes" yaml:"training_notes"`
	UnboxingPhotos    []string        `json:"unboxing_photos" yaml:"unboxing_photos"`
	CompletionPhotos  []string        `json:"completion_photos" yaml:"completion_photos"`
}

// ServiceVisit records an engineer's visit to a device.
type ServiceVisit struct {
	ID              string `json:"id" yaml:"id"`
	DeviceID        string `json:"device_id" yaml:"device_id"`
	DeviceContext   `yaml:",inline"`
	VisitDate       Date         `json:"visit_date" yaml:"visit_date"`
	Engineer        string       `json:"engineer" yaml:"engineer"`
	Purpose         VisitPurpose `json:"purpose" yaml:"purpose"`
	Status          WorkStatus   `json:"status" yaml:"status"`
	Notes           string       `json:"notes" yaml:"notes"`
	TimeSpent       float64      `json:"time_spent" yaml:"time_spent"`
	IssuesFound     []string     `json:"issues_found" yaml:"issues_found"`
	ResolutionNotes string       `json:"resolution_notes" yaml:"resolution_notes"`
	Attachments     []string     `json:"attachments" yaml:"attachments"`
}

// Contract is an AMC or CMC maintenance agreement covering one device.
// Status is caller supplied and may disagree with the end-date window.
type Contract struct {
	ID            string `json:"id" yaml:"id"`
	DeviceID      string `json:"device_id" yaml:"device_id"`
	DeviceContext `yaml:",inline"`
	ContractType  ContractType   `json:"contract_type" yaml:"contract_type"`
	StartDate     Date           `json:"start_date" yaml:"start_date"`
	EndDate       Date           `json:"end_date" yaml:"end_date"`
	Status        ContractStatus `json:"status" yaml:"status"`
	Value         float64        `json:"value" yaml:"value"`
	Terms         string         `json:"terms" yaml:"terms"`
	RenewalDate   Date           `json:"renewal_date" yaml:"renewal_date"`
	Contact       Contact        `json:"contact" yaml:"contact"`
}

// Alert is a raised condition on a device.
type Alert struct {
	ID              string `json:"id" yaml:"id"`
	DeviceID        string `json:"device_id" yaml:"device_id"`
	DeviceContext   `yaml:",inline"`
	AlertType       string        `json:"alert_type" yaml:"alert_type"`
	Severity        AlertSeverity `json:"severity" yaml:"severity"`
	Message         string        `json:"message" yaml:"message"`
	CreatedDate     Date          `json:"created_date" yaml:"created_date"`
	Status          AlertStatus   `json:"status" yaml:"status"`
	AssignedTo      string        `json:"assigned_to" yaml:"assigned_to"`
	ResolutionNotes string        `json:"resolution_notes" yaml:"resolution_notes"`
	Photos          []string      `json:"photos" yaml:"photos"`
}

// Record is implemented by every stored entity.
type Record interface {
	Facility | Device | Installation | ServiceVisit | Contract | Alert
}

// Key returns the record id.
func (f Facility) Key() string { return f.ID }

// Key returns the record id.
func (d Device) Key() string { return d.ID }

// Key returns the record id.
func (i Installation) Key() string { return i.ID }

// Key returns the record id.
func (v ServiceVisit) Key() string { return v.ID }

// Key returns the record id.
func (c Contract) Key() string { return c.ID }

// Key returns the record id.
func (a Alert) Key() string { return a.ID }

// Progress reports completed checklist items against the total.
func (i Installation) Progress() (completed, total int) {
	for _, item := range i.Checklist {
		if item.Completed {
			completed++
		}
	}
	return completed, len(i.Checklist)
}

// DefaultChecklist returns the standard installation checklist, all items open.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Item: "Device unpacked and inspected"},
		{Item: "Power connection verified"},
		{Item: "Network configuration completed"},
		{Item: "Calibration performed"},
		{Item: "Safety checks completed"},
	}
}
