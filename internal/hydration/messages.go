package hydration

import "fmt"

// Messages is the notice copy the Controller emits.
type Messages struct {
	Added        func(ml int) string
	AddFailed    string
	Removed      func(ml int) string
	RemoveFailed string
	Reset        string
	ResetFailed  string
	GoalSet      func(ml int) string
	GoalReached  string
}

var englishMessages = Messages{
	Added:        func(ml int) string { return fmt.Sprintf("Added %d ml", ml) },
	AddFailed:    "Could not save entry",
	Removed:      func(ml int) string { return fmt.Sprintf("Removed %d ml", ml) },
	RemoveFailed: "Could not remove entry",
	Reset:        "Today's log cleared",
	ResetFailed:  "Could not reset today",
	GoalSet:      func(ml int) string { return fmt.Sprintf("Daily goal set to %d ml", ml) },
	GoalReached:  "Goal reached! Great job staying hydrated",
}

var spanishMessages = Messages{
	Added:        func(ml int) string { return fmt.Sprintf("Añadidos %d ml", ml) },
	AddFailed:    "No se pudo guardar el registro",
	Removed:      func(ml int) string { return fmt.Sprintf("Eliminados %d ml", ml) },
	RemoveFailed: "No se pudo eliminar el registro",
	Reset:        "Registro de hoy borrado",
	ResetFailed:  "No se pudo reiniciar el día",
	GoalSet:      func(ml int) string { return fmt.Sprintf("Meta diaria: %d ml", ml) },
	GoalReached:  "¡Meta alcanzada! Sigue hidratándote",
}

// MessagesFor returns the copy for lang ("en" or "es"); anything else gets
// English.
func MessagesFor(lang string) Messages {
	if lang == "es" {
		return spanishMessages
	}
	return englishMessages
}
