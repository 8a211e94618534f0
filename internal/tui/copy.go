package tui

// uiCopy is the user-facing text of the dashboard in one language.
type uiCopy struct {
	ViewNames [viewCount]string

	Today       string
	OfGoal      string
	History     string
	NoEntries   string
	Loading     string
	Syncing     string
	GoalReached string
	HourlyTitle string
	NoData      string
	Settings    string
	EditGoal    string

	AmountTitle  string
	GoalTitle    string
	ResetTitle   string
	ResetYes     string
	ResetNo      string
	NotANumber   string
	InvalidInput string

	ExportTitle  string
	ExportedTo   string
	ExportFailed string
	PickerHint   string

	// Motivation is indexed by motivationLevel.
	Motivation [6]string
}

var englishCopy = uiCopy{
	ViewNames:    [viewCount]string{"Today", "Hourly", "Settings"},
	Today:        "Today",
	OfGoal:       "of daily goal",
	History:      "History",
	NoEntries:    "No water logged yet today",
	Loading:      "Loading...",
	Syncing:      "Syncing",
	GoalReached:  "Daily goal reached!",
	HourlyTitle:  "Intake by hour",
	NoData:       "No data for today",
	Settings:     "Settings",
	EditGoal:     "Press enter or g to change the daily goal",
	AmountTitle:  "Amount (ml)",
	GoalTitle:    "Daily goal (ml)",
	ResetTitle:   "Clear all of today's entries?",
	ResetYes:     "Clear",
	ResetNo:      "Keep",
	NotANumber:   "enter a positive whole number",
	InvalidInput: "Invalid input",
	ExportTitle:  "Export Format",
	ExportedTo:   "Exported to ",
	ExportFailed: "Export failed: ",
	PickerHint:   "  enter: export  esc: cancel",
	Motivation: [6]string{
		"Start your day with a glass of water.",
		"Good start, keep sipping.",
		"You're making progress.",
		"Over halfway there!",
		"Almost there, one more glass!",
		"Goal reached. Great job staying hydrated!",
	},
}

var spanishCopy = uiCopy{
	ViewNames:    [viewCount]string{"Hoy", "Por hora", "Ajustes"},
	Today:        "Hoy",
	OfGoal:       "de la meta diaria",
	History:      "Historial",
	NoEntries:    "Todavía no has registrado agua hoy",
	Loading:      "Cargando...",
	Syncing:      "Sincronizando",
	GoalReached:  "¡Meta diaria alcanzada!",
	HourlyTitle:  "Consumo por hora",
	NoData:       "Sin datos de hoy",
	Settings:     "Ajustes",
	EditGoal:     "Pulsa enter o g para cambiar la meta diaria",
	AmountTitle:  "Cantidad (ml)",
	GoalTitle:    "Meta diaria (ml)",
	ResetTitle:   "¿Borrar todos los registros de hoy?",
	ResetYes:     "Borrar",
	ResetNo:      "Conservar",
	NotANumber:   "introduce un número entero positivo",
	InvalidInput: "Entrada no válida",
	ExportTitle:  "Formato de exportación",
	ExportedTo:   "Exportado a ",
	ExportFailed: "Error al exportar: ",
	PickerHint:   "  enter: exportar  esc: cancelar",
	Motivation: [6]string{
		"Empieza el día con un vaso de agua.",
		"Buen comienzo, sigue bebiendo.",
		"Vas progresando.",
		"¡Ya pasaste la mitad!",
		"¡Casi lo logras, un vaso más!",
		"Meta alcanzada. ¡Bien hecho!",
	},
}

func copyFor(lang string) uiCopy {
	if lang == "es" {
		return spanishCopy
	}
	return englishCopy
}

func motivationLevel(pct int) int {
	switch {
	case pct <= 0:
		return 0
	case pct < 25:
		return 1
	case pct < 50:
		return 2
	case pct < 75:
		return 3
	case pct < 100:
		return 4
	}
	return 5
}

func (c uiCopy) motivation(pct int) string {
	return c.Motivation[motivationLevel(pct)]
}
