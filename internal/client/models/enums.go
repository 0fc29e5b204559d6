package models

import "github.com/dmitrijs2005/itcontroller/internal/client/enum"

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pendiente"
	StatusInProgress TaskStatus = "EnProceso"
	StatusDone       TaskStatus = "Completada"
)

var TaskStatuses = enum.MustTable("estado",
	enum.Pair[TaskStatus]{Label: StatusPending, Ordinal: 0},
	enum.Pair[TaskStatus]{Label: StatusInProgress, Ordinal: 1},
	enum.Pair[TaskStatus]{Label: StatusDone, Ordinal: 2},
)

type TaskCategory string

const (
	CategoryHardware      TaskCategory = "Hardware"
	CategorySoftware      TaskCategory = "Software"
	CategoryNetwork       TaskCategory = "Redes"
	CategoryDocumentation TaskCategory = "Documentacion"
	CategoryMaintenance   TaskCategory = "Mantenimiento"
)

var TaskCategories = enum.MustTable("categoria",
	enum.Pair[TaskCategory]{Label: CategoryHardware, Ordinal: 0},
	enum.Pair[TaskCategory]{Label: CategorySoftware, Ordinal: 1},
	enum.Pair[TaskCategory]{Label: CategoryNetwork, Ordinal: 2},
	enum.Pair[TaskCategory]{Label: CategoryDocumentation, Ordinal: 3},
	enum.Pair[TaskCategory]{Label: CategoryMaintenance, Ordinal: 4},
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Baja"
	PriorityMedium TaskPriority = "Media"
	PriorityHigh   TaskPriority = "Alta"
	PriorityUrgent TaskPriority = "Urgente"
)

var TaskPriorities = enum.MustTable("prioridad",
	enum.Pair[TaskPriority]{Label: PriorityLow, Ordinal: 0},
	enum.Pair[TaskPriority]{Label: PriorityMedium, Ordinal: 1},
	enum.Pair[TaskPriority]{Label: PriorityHigh, Ordinal: 2},
	enum.Pair[TaskPriority]{Label: PriorityUrgent, Ordinal: 3},
)

type NotePriority string

const (
	NotePriorityLow    NotePriority = "Baja"
	NotePriorityMedium NotePriority = "Media"
	NotePriorityHigh   NotePriority = "Alta"
)

var NotePriorities = enum.MustTable("nota.prioridad",
	enum.Pair[NotePriority]{Label: NotePriorityLow, Ordinal: 0},
	enum.Pair[NotePriority]{Label: NotePriorityMedium, Ordinal: 1},
	enum.Pair[NotePriority]{Label: NotePriorityHigh, Ordinal: 2},
)

type NoteCategory string

const (
	NoteGeneral   NoteCategory = "General"
	NoteTechnical NoteCategory = "Tecnica"
	NoteProcedure NoteCategory = "Procedimiento"
	NoteIncident  NoteCategory = "Incidencia"
	NoteOther     NoteCategory = "Otro"
)

var NoteCategories = enum.MustTable("nota.categoria",
	enum.Pair[NoteCategory]{Label: NoteGeneral, Ordinal: 0},
	enum.Pair[NoteCategory]{Label: NoteTechnical, Ordinal: 1},
	enum.Pair[NoteCategory]{Label: NoteProcedure, Ordinal: 2},
	enum.Pair[NoteCategory]{Label: NoteIncident, Ordinal: 3},
	enum.Pair[NoteCategory]{Label: NoteOther, Ordinal: 4},
)

// CredentialCategory travels as its label, not as an ordinal. The table's
// ordinals only fix the display order.
type CredentialCategory string

const (
	CredentialGeneral  CredentialCategory = "General"
	CredentialNetwork  CredentialCategory = "Redes"
	CredentialServers  CredentialCategory = "Servidores"
	CredentialPersonal CredentialCategory = "Personal"
	CredentialSoftware CredentialCategory = "Software"
	CredentialPrinter  CredentialCategory = "Impresora"
	CredentialOther    CredentialCategory = "Otro"
)

var CredentialCategories = enum.MustTable("credencial.categoria",
	enum.Pair[CredentialCategory]{Label: CredentialGeneral, Ordinal: 0},
	enum.Pair[CredentialCategory]{Label: CredentialNetwork, Ordinal: 1},
	enum.Pair[CredentialCategory]{Label: CredentialServers, Ordinal: 2},
	enum.Pair[CredentialCategory]{Label: CredentialPersonal, Ordinal: 3},
	enum.Pair[CredentialCategory]{Label: CredentialSoftware, Ordinal: 4},
	enum.Pair[CredentialCategory]{Label: CredentialPrinter, Ordinal: 5},
	enum.Pair[CredentialCategory]{Label: CredentialOther, Ordinal: 6},
)
