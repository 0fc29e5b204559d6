package models

import "time"

// ActivityType is the server-side event kind. Unknown kinds are kept as-is
// and shown with a generic label.
type ActivityType string

const (
	ActivityTaskCreated       ActivityType = "TareaCreada"
	ActivityTaskUpdated       ActivityType = "TareaActualizada"
	ActivityTaskCompleted     ActivityType = "TareaCompletada"
	ActivityTaskDeleted       ActivityType = "TareaEliminada"
	ActivityCommentAdded      ActivityType = "ComentarioAgregado"
	ActivityNoteCreated       ActivityType = "NotaCreada"
	ActivityNoteUpdated       ActivityType = "NotaActualizada"
	ActivityNoteDeleted       ActivityType = "NotaEliminada"
	ActivityCredentialCreated ActivityType = "CredencialCreada"
	ActivityCredentialDeleted ActivityType = "CredencialEliminada"
)

var activityLabels = map[ActivityType]string{
	ActivityTaskCreated:       "TAREA CREADA",
	ActivityTaskUpdated:       "TAREA ACTUALIZADA",
	ActivityTaskCompleted:     "TAREA COMPLETADA",
	ActivityTaskDeleted:       "TAREA ELIMINADA",
	ActivityCommentAdded:      "COMENTARIO",
	ActivityNoteCreated:       "NOTA CREADA",
	ActivityNoteUpdated:       "NOTA ACTUALIZADA",
	ActivityNoteDeleted:       "NOTA ELIMINADA",
	ActivityCredentialCreated: "CREDENCIAL CREADA",
	ActivityCredentialDeleted: "CREDENCIAL ELIMINADA",
}

func (t ActivityType) Label() string {
	if l, ok := activityLabels[t]; ok {
		return l
	}
	return "ACTIVIDAD"
}

// Activity is one entry of the feed. It decodes straight from JSON.
type Activity struct {
	ID             int64        `json:"id"`
	Type           ActivityType `json:"tipo"`
	Description    string       `json:"descripcion"`
	ReferenceID    *int64       `json:"referenciaId,omitempty"`
	ReferenceInfo  string       `json:"referenciaInfo,omitempty"`
	CreatedAtStamp Timestamp    `json:"fechaCreacion"`
}

func (a Activity) Key() int64 { return a.ID }

func (a Activity) CreatedAt() time.Time { return a.CreatedAtStamp.Time }
