package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"snake-engine/game/entity"
	"snake-engine/game/manager"
)

// ErrInvalidSettings is wrapped by every SettingsError.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsError names the first violated setting.
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return e.Reason
}

func (e *SettingsError) Unwrap() error {
	return ErrInvalidSettings
}

func invalid(field, reason string) error {
	return &SettingsError{Field: field, Reason: reason}
}

// Settings configures a session. Start from DefaultSettings and override fields.
type Settings struct {
	InitialSnakeSize      int              `json:"initialSnakeSize"`
	RoomWidth             int              `json:"roomWidth"`
	RoomHeight            int              `json:"roomHeight"`
	AppleLifeTime         int              `json:"appleLifeTime"`
	SnakeType             entity.SnakeType `json:"snakeType"`
	RoomType              entity.RoomType  `json:"roomType"`
	WinPoints             int              `json:"winPoints"`
	PointsToNewLevel      int              `json:"pointsToNewLevel"`
	InitialSpeed          float64          `json:"initialSpeed"`
	SpeedAccelerationStep float64          `json:"speedAccelerationStep"`
}

func DefaultSettings() Settings {
	return Settings{
		InitialSnakeSize:      3,
		RoomWidth:             64,
		RoomHeight:            64,
		AppleLifeTime:         100,
		SnakeType:             entity.ClassicSnakeType,
		RoomType:              entity.BorderedRoomType,
		WinPoints:             100,
		PointsToNewLevel:      10,
		InitialSpeed:          2,
		SpeedAccelerationStep: 0.5,
	}
}

// Validate checks the settings in a fixed order and reports the first violation.
// Room dimensions are checked by the room constructor.
func (s Settings) Validate() error {
	if s.InitialSnakeSize*2 > s.RoomHeight {
		return invalid("initialSnakeSize", "Initial snake size must be lower half height of room")
	}
	if !s.SnakeType.IsSupported() {
		return invalid("snakeType", "Incorrect snake type")
	}
	if !s.RoomType.IsSupported() {
		return invalid("roomType", "Incorrect room type")
	}
	if s.WinPoints < 1 {
		return invalid("winPoints", "Win points must be greater than 0")
	}
	if s.PointsToNewLevel < 1 {
		return invalid("pointsToNewLevel", "Points to new level must be greater than 0")
	}
	if !isFinite(s.InitialSpeed) {
		return invalid("initialSpeed", "Initial speed must be integer or float number")
	}
	if s.InitialSpeed <= 1 {
		return invalid("initialSpeed", "Initial speed must be greater than 1")
	}
	if !isFinite(s.SpeedAccelerationStep) {
		return invalid("speedAccelerationStep", "Speed acceleration step must be integer or float number")
	}
	if s.SpeedAccelerationStep <= 0 {
		return invalid("speedAccelerationStep", "Speed acceleration step must be greater than 0")
	}
	if s.InitialSpeed > manager.MaxSpeed {
		return invalid("initialSpeed", fmt.Sprintf("Initial speed must be equal or lower than %v", manager.MaxSpeed))
	}
	if s.SpeedAccelerationStep > s.InitialSpeed {
		return invalid("speedAccelerationStep", "Speed acceleration step can not be greater than initial speed")
	}
	if s.AppleLifeTime < 10 {
		return invalid("appleLifeTime", "Apple life time must be greater 9")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type intField struct {
	key    string
	label  string
	target func(*Settings) *int
}

var intFields = []intField{
	{"initialSnakeSize", "Initial snake size", func(s *Settings) *int { return &s.InitialSnakeSize }},
	{"roomWidth", "Room width", func(s *Settings) *int { return &s.RoomWidth }},
	{"roomHeight", "Room height", func(s *Settings) *int { return &s.RoomHeight }},
	{"appleLifeTime", "Apple life time", func(s *Settings) *int { return &s.AppleLifeTime }},
	{"winPoints", "Win points", func(s *Settings) *int { return &s.WinPoints }},
	{"pointsToNewLevel", "Points to new level", func(s *Settings) *int { return &s.PointsToNewLevel }},
}

type floatField struct {
	key    string
	label  string
	target func(*Settings) *float64
}

var floatFields = []floatField{
	{"initialSpeed", "Initial speed", func(s *Settings) *float64 { return &s.InitialSpeed }},
	{"speedAccelerationStep", "Speed acceleration step", func(s *Settings) *float64 { return &s.SpeedAccelerationStep }},
}

// ParseSettings overlays a JSON object onto DefaultSettings. Missing or null
// keys keep their defaults. Values must have the right JSON type; integer
// options reject fractions. Range checks are left to Validate.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}

	known := map[string]bool{"snakeType": true, "roomType": true}
	for _, f := range intFields {
		known[f.key] = true
	}
	for _, f := range floatFields {
		known[f.key] = true
	}
	for key := range raw {
		if !known[key] {
			return s, invalid(key, fmt.Sprintf("Unknown setting %q", key))
		}
	}

	for _, f := range intFields {
		v, ok := raw[f.key]
		if !ok || v == nil {
			continue
		}
		n, ok := asInt(v)
		if !ok {
			return s, invalid(f.key, f.label+" must be integer")
		}
		*f.target(&s) = n
	}

	if v, ok := raw["snakeType"]; ok && v != nil {
		str, ok := v.(string)
		if !ok {
			return s, invalid("snakeType", "Incorrect snake type")
		}
		s.SnakeType = entity.SnakeType(str)
	}
	if v, ok := raw["roomType"]; ok && v != nil {
		str, ok := v.(string)
		if !ok {
			return s, invalid("roomType", "Incorrect room type")
		}
		s.RoomType = entity.RoomType(str)
	}

	for _, f := range floatFields {
		v, ok := raw[f.key]
		if !ok || v == nil {
			continue
		}
		num, ok := v.(json.Number)
		if !ok {
			return s, invalid(f.key, f.label+" must be integer or float number")
		}
		x, err := num.Float64()
		if err != nil {
			return s, invalid(f.key, f.label+" must be integer or float number")
		}
		*f.target(&s) = x
	}

	return s, nil
}

func asInt(v any) (int, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := num.Int64(); err == nil {
		return int(i), true
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
