package service

import (
	"fmt"
	"strconv"
	"strings"
)

// placeholderTags stands in for the tag list of a user who has none yet.
const placeholderTags = "Otros"

func tagList(tags []string) string {
	if len(tags) == 0 {
		return placeholderTags
	}
	return strings.Join(tags, ", ")
}

// BuildMovementPrompt asks the model to turn a voice transcription into a
// single JSON object with the keys amount, type, suggested_tag and description.
func BuildMovementPrompt(tags []string, transcription string) string {
	return fmt.Sprintf(`Actúa como un asistente de finanzas personales. El usuario dictó por voz un movimiento de dinero.

Etiquetas existentes del usuario:

%s

Tu tarea es extraer el movimiento y responder ÚNICAMENTE con un objeto JSON con exactamente estas claves:
- "amount": número, el monto del movimiento sin símbolos de moneda ni separadores de miles.
- "type": "income" si el usuario recibió dinero, "expense" si lo gastó o pagó.
- "suggested_tag": nunca vacío. Si alguna etiqueta existente describe bien el movimiento, usa esa etiqueta tal cual. Si ninguna aplica, inventa una etiqueta nueva, corta y precisa (1 o 2 palabras máximo).
- "description": una descripción breve del movimiento.

No expliques tu respuesta. No agregues texto antes ni después del JSON.

Transcripción: "%s"

JSON:`, tagList(tags), transcription)
}

// BuildTagPrompt asks the model for a bare tag name, existing or new, for a
// movement description and amount.
func BuildTagPrompt(tags []string, description string, amount float64) string {
	return fmt.Sprintf(`Actúa como un asistente de finanzas personales. Tienes una lista de etiquetas existentes del usuario:

%s

Tu tarea es:
1. Si alguna de estas etiquetas describe bien el movimiento, responde solo con una de ellas.
2. Si **ninguna** etiqueta aplica bien, entonces **inventa una nueva etiqueta corta y precisa** (1 o 2 palabras máximo) que clasifique este movimiento.

No expliques tu respuesta. Solo responde con una sola etiqueta (ya sea existente o nueva).

Movimiento:
Descripción: "%s"
Monto: %s

Etiqueta sugerida:`, tagList(tags), description, strconv.FormatFloat(amount, 'f', -1, 64))
}
