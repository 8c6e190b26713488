package core

import "devicecore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Severity           = domain.Severity
	Facility           = domain.Facility
	Device             = domain.Device
	Installation       = domain.Installation
	ServiceVisit       = domain.ServiceVisit
	Contract           = domain.Contract
	Alert              = domain.Alert
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
	RulesEngine        = domain.RulesEngine
	Rule               = domain.Rule
)

const (
	EntityFacility     = domain.EntityFacility
	EntityDevice       = domain.EntityDevice
	EntityInstallation = domain.EntityInstallation
	EntityServiceVisit = domain.EntityServiceVisit
	EntityContract     = domain.EntityContract
	EntityAlert        = domain.EntityAlert
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
