package usecase

// Keyboard button labels. Inbound text is matched against these exact
// strings, so they must stay in sync with the keyboards sent below.
const (
	btnDriver        = "🚗 Soy un buen conductor"
	btnPassenger     = "🚶 Soy pasajero"
	btnHelp          = "📖 Como usar el MoteMovil"
	btnShareLocation = "📍 Compartir mi ubicación actual"
	btnCancel        = "❌ Cancelar"
	btnFinishTrip    = "✅ Finalizar viaje"
	btnCancelTrip    = "🚫 Cancelar viaje"
)

func mainMenuReplies() []string {
	return []string{btnDriver, btnPassenger, btnHelp, btnFinishTrip, btnCancelTrip}
}

func locationReplies() []string {
	return []string{btnShareLocation, btnCancel}
}

const welcomeText = "✨ MOTEMOVIL de EcoBanco\nImpulsado por KyuDan 🔥\n\n" +
	"\"Cambiando de mentalidad para conseguir prosperidad\"\n\n" +
	"Selecciona tu rol para iniciar el trayecto:"

const helpText = "📖 Cómo usar el MoteMovil:\n\n" +
	"1. Elige si eres conductor o pasajero.\n" +
	"2. Comparte tu ubicación actual.\n" +
	"3. Responde las preguntas sobre tu viaje.\n" +
	"4. Te conectamos con personas de tu zona.\n\n" +
	"Usa \"" + btnFinishTrip + "\" cuando completes tu recorrido."

const locationPromptText = "📍 Para un mejor match, por favor comparte tu ubicación actual.\n\n" +
	"Esto nos permite conectar personas en la misma zona sin depender solo de nombres de calles."

const processingText = "🤖 IA KyuDan procesando datos..."

const transientErrorText = "⚠️ Algo salió mal, por favor intenta de nuevo en un momento."

const denyActiveDriverText = "⚠️ Tienes conexiones abiertas. Finaliza tu recorrido."

const denyActivePassengerText = "⚠️ No has finalizado tu recorrido anterior."

const kycPromptText = "🪪 Antes de tu siguiente viaje necesitamos verificar tu identidad.\n\n" +
	"Envía una foto de tu carnet de identidad para continuar."

const kycDoneText = "✅ Identidad verificada. Ya puedes registrar tu siguiente viaje."

const startHintText = "Usa el teclado para comenzar: elige tu rol o escribe /start."

const flowCancelledText = "Flujo cancelado. Puedes comenzar de nuevo cuando quieras."

const noActiveTripText = "ℹ️ No tienes un viaje activo."

const tripFinishedText = "🏁 ¡Recorrido finalizado! Gracias por compartir tu viaje."

const tripCancelledText = "🚫 Viaje cancelado."

const noMatchesText = "🔍 Por ahora no hay matches en tu zona.\n" +
	"Tu solicitud quedó registrada y te avisaremos cuando haya un conductor compatible."

const driverDoneText = "✅ ¡Registro Exitoso!\n\n" +
	"Tu ubicación y datos han sido guardados en el búnker.\n" +
	"Te avisaremos cuando haya un match compatible."

const driverDoneManualText = driverDoneText + "\n(Datos guardados en modo manual.)"

// fieldPrompt pairs a collected-field key with the question asked for it
type fieldPrompt struct {
	key    string
	prompt string
}

var driverFields = []fieldPrompt{
	{key: "name", prompt: "🚗 Datos del Conductor\n\n¿Cómo te llamas?"},
	{key: "route", prompt: "¿Cuál es tu ruta? (inicio y fin)"},
	{key: "seats", prompt: "¿Cuántos asientos ofreces?"},
	{key: "fare", prompt: "¿Cuál es el aporte por pasajero?"},
	{key: "departure", prompt: "¿A qué hora sales? (ej. 14:30)"},
	{key: "vehicle", prompt: "¿Modelo y placa de tu vehículo?"},
}

var passengerFields = []fieldPrompt{
	{key: "destination", prompt: "🚶 Datos del Pasajero\n\n¿A dónde vas?"},
	{key: "deadline", prompt: "¿Cuál es tu hora límite de salida? (ej. 18:00)"},
}
