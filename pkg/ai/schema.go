package ai

import "encoding/json"

// analysisResponseSchema constrains the model output to the JSON document the
// parser expects: a summary with key points and action items plus the
// diarized transcript, every field carrying a timestamp.
var analysisResponseSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "summary": {
      "type": "OBJECT",
      "properties": {
        "key_points": {
          "type": "ARRAY",
          "items": {
            "type": "OBJECT",
            "properties": {
              "point": {"type": "STRING"},
              "timestamp": {"type": "STRING"}
            },
            "required": ["point", "timestamp"]
          }
        },
        "action_items": {
          "type": "ARRAY",
          "items": {
            "type": "OBJECT",
            "properties": {
              "action": {"type": "STRING"},
              "responsible": {"type": "STRING"},
              "timestamp": {"type": "STRING"}
            },
            "required": ["action", "responsible", "timestamp"]
          }
        }
      },
      "required": ["key_points", "action_items"]
    },
    "transcript": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "speaker": {"type": "STRING"},
          "text": {"type": "STRING"},
          "timestamp": {"type": "STRING"}
        },
        "required": ["speaker", "text", "timestamp"]
      }
    }
  },
  "required": ["summary", "transcript"]
}`)
