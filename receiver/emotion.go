package receiver

import (
	"encoding/json"
	"strconv"

	"github.com/novalink/novalink-go/transport"
)

// EmotionReceiver receives JSON emotion-state messages from a NovaLink stream
// and forwards the decoded name/value mapping to the registered listeners.
type EmotionReceiver struct {
	*session
	updates *Dispatcher[map[string]float64]
}

// NewEmotionReceiver creates an emotion receiver with the given
// configuration. A nil config uses the defaults with the standard emotion
// endpoint.
func NewEmotionReceiver(config *Config) (*EmotionReceiver, error) {
	if config == nil {
		config = DefaultConfig()
		config.Address = DefaultEmotionAddress
	}
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	r := &EmotionReceiver{
		updates: NewDispatcher[map[string]float64](),
	}
	r.session = newSession("emotion receiver", config, r.bindMessage)
	return r, nil
}

// OnEmotionUpdated registers a listener for decoded emotion mappings and
// returns a token for removal
func (r *EmotionReceiver) OnEmotionUpdated(fn func(values map[string]float64)) string {
	return r.updates.Subscribe(fn)
}

// OffEmotionUpdated removes a previously registered emotion listener
func (r *EmotionReceiver) OffEmotionUpdated(token string) {
	r.updates.Unsubscribe(token)
}

func (r *EmotionReceiver) bindMessage(t transport.Transport) {
	t.OnTextMessage(func(text string) {
		if !r.owns(t) {
			return
		}
		r.handleTextMessage(text)
	})
}

func (r *EmotionReceiver) handleTextMessage(text string) {
	values, err := decodeEmotionValues(text)
	if err != nil {
		r.config.Logger.Warn("emotion receiver dropped payload %q: %v", text, err)
		return
	}

	r.updates.Notify(values)
}

// decodeEmotionValues extracts the named float values from one JSON object
// message. JSON numbers pass through, strings whose whole content is a plain
// numeric literal are coerced, everything else is skipped. Only top-level
// values are inspected; nested objects and arrays fall through the type
// switch. A message that yields no usable field is a protocol error.
func decodeEmotionValues(text string) (map[string]float64, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, transport.NewProtocolError("emotion payload is not a JSON object", err)
	}

	values := make(map[string]float64, len(fields))
	for name, field := range fields {
		switch v := field.(type) {
		case float64:
			values[name] = v
		case string:
			if !isNumericLiteral(v) {
				continue
			}
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				values[name] = f
			}
		}
	}

	if len(values) == 0 {
		return nil, transport.NewProtocolError("emotion payload has no numeric fields", nil)
	}
	return values, nil
}

// isNumericLiteral reports whether s consists entirely of an optional sign,
// digits and at most one decimal point. Exponent notation is rejected on
// purpose: string coercion only covers plain slider-style values.
func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}

	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}

	sawDigit := false
	sawPoint := false
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			sawDigit = true
		case s[i] == '.' && !sawPoint:
			sawPoint = true
		default:
			return false
		}
	}
	return sawDigit
}
