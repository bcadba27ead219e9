package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var errMissingField = errors.New("required field is missing")

// record is the persisted shape of a card where every field is optional, so that
// records written by older versions still decode with the initial values.
type record struct {
	ID               *string           `yaml:"id" json:"id"`
	Front            *string           `yaml:"front" json:"front"`
	Back             *string           `yaml:"back" json:"back"`
	Definition       *string           `yaml:"definition" json:"definition"`
	ExampleSentence  *string           `yaml:"example_sentence" json:"exampleSentence"`
	PartOfSpeech     *string           `yaml:"part_of_speech" json:"partOfSpeech"`
	Gender           *string           `yaml:"gender" json:"gender"`
	Notes            *string           `yaml:"notes" json:"notes"`
	ImageAttachments []ImageAttachment `yaml:"image_attachments" json:"imageAttachments"`
	AudioFileName    *string           `yaml:"audio_file_name" json:"audioFileName"`
	Status           *Status           `yaml:"status" json:"status"`
	EaseFactor       *float64          `yaml:"ease_factor" json:"easeFactor"`
	Interval         *float64          `yaml:"interval" json:"interval"`
	Due              *time.Time        `yaml:"due" json:"due"`
	Lapses           *int              `yaml:"lapses" json:"lapses"`
}

func (c *Card) UnmarshalYAML(value *yaml.Node) error {
	var r record
	if err := value.Decode(&r); err != nil {
		return err
	}
	return r.into(c)
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	return r.into(c)
}

func (r record) into(c *Card) error {
	if r.ID == nil {
		return fmt.Errorf("%w: id", errMissingField)
	}
	id, err := uuid.Parse(*r.ID)
	if err != nil {
		return fmt.Errorf("uuid.Parse(%s) > %w", *r.ID, err)
	}
	if r.Front == nil {
		return fmt.Errorf("%w: front of %s", errMissingField, id)
	}
	if r.Back == nil {
		return fmt.Errorf("%w: back of %s", errMissingField, id)
	}

	decoded := Card{
		ID:               id,
		Front:            *r.Front,
		Back:             *r.Back,
		Definition:       valueOr(r.Definition, *r.Back),
		ExampleSentence:  valueOr(r.ExampleSentence, ""),
		PartOfSpeech:     r.PartOfSpeech,
		Gender:           r.Gender,
		Notes:            r.Notes,
		ImageAttachments: r.ImageAttachments,
		AudioFileName:    r.AudioFileName,
		Status:           valueOr(r.Status, StatusNew),
		EaseFactor:       valueOr(r.EaseFactor, DefaultEaseFactor),
		Interval:         valueOr(r.Interval, 0),
		Due:              r.Due,
		Lapses:           valueOr(r.Lapses, 0),
	}
	if !decoded.Status.IsValid() {
		return fmt.Errorf("%w: %q", errInvalidStatus, decoded.Status)
	}
	*c = decoded
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
