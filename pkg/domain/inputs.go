package domain

// Create inputs carry the caller-owned fields of each entity. Denormalized
// display fields are absent: the store fills them from the referenced parent.
// An empty ID asks the store to issue one.

// FacilityInput describes a facility to create.
type FacilityInput struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Address       string  `json:"address" yaml:"address"`
	City          string  `json:"city" yaml:"city"`
	State         string  `json:"state" yaml:"state"`
	Zip           string  `json:"zip" yaml:"zip"`
	Contact       Contact `json:"contact" yaml:"contact"`
	LastVisitDate Date    `json:"last_visit_date" yaml:"last_visit_date"`
}

// Facility converts the input into a record.
func (in FacilityInput) Facility() Facility {
	return Facility(in)
}

// DeviceInput describes a device to create.
type DeviceInput struct {
	ID               string         `json:"id" yaml:"id"`
	Type             string         `json:"type" yaml:"type"`
	Model            string         `json:"model" yaml:"model"`
	SerialNumber     string         `json:"serial_number" yaml:"serial_number"`
	FacilityID       string         `json:"facility_id" yaml:"facility_id"`
	Status           DeviceStatus   `json:"status" yaml:"status"`
	BatteryLevel     int            `json:"battery_level" yaml:"battery_level"`
	LastServiceDate  Date           `json:"last_service_date" yaml:"last_service_date"`
	InstallationDate Date           `json:"installation_date" yaml:"installation_date"`
	AMCStatus        ContractStatus `json:"amc_status" yaml:"amc_status"`
	CMCStatus        ContractStatus `json:"cmc_status" yaml:"cmc_status"`
	Location         string         `json:"location" yaml:"location"`
	AssignedEngineer string         `json:"assigned_engineer" yaml:"assigned_engineer"`
}

// Device converts the input into a record without a facility name.
func (in DeviceInput) Device() Device {
	return Device{
		ID:               in.ID,
		Type:             in.Type,
		Model:            in.Model,
		SerialNumber:     in.SerialNumber,
		FacilityID:       in.FacilityID,
		Status:           in.Status,
		BatteryLevel:     in.BatteryLevel,
		LastServiceDate:  in.LastServiceDate,
		InstallationDate: in.InstallationDate,
		AMCStatus:        in.AMCStatus,
		CMCStatus:        in.CMCStatus,
		Location:         in.Location,
		AssignedEngineer: in.AssignedEngineer,
	}
}

// InstallationInput describes an installation to create. A nil Checklist
// receives DefaultChecklist.
type InstallationInput struct {
	ID                string          `json:"id" yaml:"id"`
	DeviceID          string          `json:"device_id" yaml:"device_id"`
	InstallationDate  Date            `json:"installation_date" yaml:"installation_date"`
	Engineer          string          `json:"engineer" yaml:"engineer"`
	Status            WorkStatus      `json:"status" yaml:"status"`
	Checklist         []ChecklistItem `json:"checklist" yaml:"checklist"`
	TrainingCompleted bool            `json:"training_completed" yaml:"training_completed"`
	TrainingNotes     string          `json:"training_notes" yaml:"training_notes"`
	UnboxingPhotos    []string        `json:"unboxing_photos" yaml:"unboxing_photos"`
	CompletionPhotos  []string        `json:"completion_photos" yaml:"completion_photos"`
}

// Installation converts the input into a record.
func (in InstallationInput) Installation() Installation {
	return Installation{
		ID:                in.ID,
		DeviceID:          in.DeviceID,
		InstallationDate:  in.InstallationDate,
		Engineer:          in.Engineer,
		Status:            in.Status,
		Checklist:         in.Checklist,
		TrainingCompleted: in.TrainingCompleted,
		TrainingNotes:     in.TrainingNotes,
		UnboxingPhotos:    in.UnboxingPhotos,
		CompletionPhotos:  in.CompletionPhotos,
	}
}

// ServiceVisitInput describes a service visit to create.
type ServiceVisitInput struct {
	ID              string       `json:"id" yaml:"id"`
	DeviceID        string       `json:"device_id" yaml:"device_id"`
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

// ServiceVisit converts the input into a record.
func (in ServiceVisitInput) ServiceVisit() ServiceVisit {
	return ServiceVisit{
		ID:              in.ID,
		DeviceID:        in.DeviceID,
		VisitDate:       in.VisitDate,
		Engineer:        in.Engineer,
		Purpose:         in.Purpose,
		Status:          in.Status,
		Notes:           in.Notes,
		TimeSpent:       in.TimeSpent,
		IssuesFound:     in.IssuesFound,
		ResolutionNotes: in.ResolutionNotes,
		Attachments:     in.Attachments,
	}
}

// ContractInput describes a contract to create.
type ContractInput struct {
	ID           string         `json:"id" yaml:"id"`
	DeviceID     string         `json:"device_id" yaml:"device_id"`
	ContractType ContractType   `json:"contract_type" yaml:"contract_type"`
	StartDate    Date           `json:"start_date" yaml:"start_date"`
	EndDate      Date           `json:"end_date" yaml:"end_date"`
	Status       ContractStatus `json:"status" yaml:"status"`
	Value        float64        `json:"value" yaml:"value"`
	Terms        string         `json:"terms" yaml:"terms"`
	RenewalDate  Date           `json:"renewal_date" yaml:"renewal_date"`
	Contact      Contact        `json:"contact" yaml:"contact"`
}

// Contract converts the input into a record.
func (in ContractInput) Contract() Contract {
	return Contract{
		ID:           in.ID,
		DeviceID:     in.DeviceID,
		ContractType: in.ContractType,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       in.Status,
		Value:        in.Value,
		Terms:        in.Terms,
		RenewalDate:  in.RenewalDate,
		Contact:      in.Contact,
	}
}

// AlertInput describes an alert to create.
type AlertInput struct {
	ID              string        `json:"id" yaml:"id"`
	DeviceID        string        `json:"device_id" yaml:"device_id"`
	AlertType       string        `json:"alert_type" yaml:"alert_type"`
	Severity        AlertSeverity `json:"severity" yaml:"severity"`
	Message         string        `json:"message" yaml:"message"`
	CreatedDate     Date          `json:"created_date" yaml:"created_date"`
	Status          AlertStatus   `json:"status" yaml:"status"`
	AssignedTo      string        `json:"assigned_to" yaml:"assigned_to"`
	ResolutionNotes string        `json:"resolution_notes" yaml:"resolution_notes"`
	Photos          []string      `json:"photos" yaml:"photos"`
}

// Alert converts the input into a record.
func (in AlertInput) Alert() Alert {
	return Alert{
		ID:              in.ID,
		DeviceID:        in.DeviceID,
		AlertType:       in.AlertType,
		Severity:        in.Severity,
		Message:         in.Message,
		CreatedDate:     in.CreatedDate,
		Status:          in.Status,
		AssignedTo:      in.AssignedTo,
		ResolutionNotes: in.ResolutionNotes,
		Photos:          in.Photos,
	}
}
