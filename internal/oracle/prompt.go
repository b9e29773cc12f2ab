package oracle

import (
	"fmt"
	"strings"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/ai"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/session"
)

// DefaultPolicy is the standing instruction sent as the system message on
// every turn.
const DefaultPolicy = `Du bist ein geduldiger, freundlicher Biologie-Tutor für Schüler der Klassen 9-10.
Du arbeitest sokratisch: du stellst Fragen, die den Schüler selbst zum Verständnis führen.

WICHTIGE REGELN:
1. Sei SEHR STRENG bei wissenschaftlichen Begriffen - akzeptiere nur 100% korrekte Schreibweisen.
   - "Cytosin" ist korrekt, "Cytosil" oder "Cytozin" sind FALSCH
   - "Thymin" ist korrekt, "Timin" ist FALSCH

2. Arbeite immer am aktuellen Konzept. Setze "konzept_verstanden" erst auf true,
   wenn der Schüler das Konzept wirklich sicher erklärt hat.

3. Eskaliere deine Hilfe schrittweise über "hilfe_stufe":
   0 = kleiner Hinweis, 1 = konkreter Hinweis, 2 = visuelle Hilfe, 3 = Umformulierung der Frage.
   Wähle die Stufe abhängig von der Anzahl der Versuche und erkennbarer Frustration.

4. Setze "frustration_erkannt" auf true, wenn der Schüler entmutigt oder genervt wirkt.

5. Schlage ein Bild ("bild_zeigen" + "bild_hinweis" aus der Liste verfügbarer Bilder)
   erst vor, wenn mehrere Versuche ohne Verständnis vergangen sind oder es wirklich hilft.

6. Biete Quellen ("quellen_anbieten") an, wenn der Schüler vertiefen möchte oder
   zusätzliches Material braucht.

7. Gib konstruktives Feedback: bei richtigen Antworten kurzes Lob und die nächste Frage,
   bei teilweise richtigen, was gut war und was fehlt, bei falschen eine Korrektur mit Erklärung.`

// responseFormat instructs the oracle to answer with the judgment JSON
// and nothing else.
const responseFormat = `Antworte NUR mit einem JSON-Objekt in genau diesem Format, ohne zusätzlichen Text:
{
    "nachricht": "deine Antwort an den Schüler (Feedback und/oder nächste Frage)",
    "hilfe_stufe": 0,
    "bild_zeigen": false,
    "bild_hinweis": "",
    "konzept_verstanden": false,
    "quellen_anbieten": false,
    "frustration_erkannt": false,
    "verstaendnis": "gut" oder "mittel" oder "hilfe"
}`

// TaskContext frames the current turn for the oracle.
type TaskContext struct {
	TopicTitle       string
	TopicDescription string
	Concept          string
	Attempt          int
	MediaIDs         []string
	Opening          bool // first turn of a topic: ask the opening question
}

// buildMessages assembles the ordered oracle input: policy, the full
// dialog replay, then the task framing for this turn.
func buildMessages(policy string, history []session.Turn, tc TaskContext) []ai.Message {
	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{Role: "system", Content: policy})

	for _, turn := range history {
		role := "user"
		if turn.Role == session.RoleTutor {
			role = "assistant"
		}
		messages = append(messages, ai.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, ai.Message{Role: "user", Content: taskMessage(tc)})
	return messages
}

func taskMessage(tc TaskContext) string {
	mediaList := "keine"
	if len(tc.MediaIDs) > 0 {
		mediaList = strings.Join(tc.MediaIDs, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thema: %s", tc.TopicTitle)
	if tc.TopicDescription != "" {
		fmt.Fprintf(&b, " - %s", tc.TopicDescription)
	}
	fmt.Fprintf(&b, "\nAktuelles Konzept: %s", tc.Concept)
	fmt.Fprintf(&b, "\nBisherige Versuche für dieses Konzept: %d", tc.Attempt)
	fmt.Fprintf(&b, "\nVerfügbare Bilder für bild_hinweis: %s", mediaList)

	if tc.Opening {
		b.WriteString("\n\nEröffne den Dialog: begrüße den Schüler kurz und stelle eine erste sokratische Frage zum aktuellen Konzept auf mittlerem Niveau.")
	} else {
		b.WriteString("\n\nBewerte die letzte Antwort des Schülers zum aktuellen Konzept und führe den Dialog fort.")
	}

	b.WriteString("\n\n")
	b.WriteString(responseFormat)
	return b.String()
}
