package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashcards/internal/card"
)

const insertBatchSize = 500

type cardRow struct {
	ID               string         `db:"id"`
	Language         string         `db:"language"`
	Position         int            `db:"position"`
	Front            string         `db:"front"`
	Back             string         `db:"back"`
	Definition       string         `db:"definition"`
	ExampleSentence  string         `db:"example_sentence"`
	PartOfSpeech     sql.NullString `db:"part_of_speech"`
	Gender           sql.NullString `db:"gender"`
	Notes            sql.NullString `db:"notes"`
	ImageAttachments sql.NullString `db:"image_attachments"`
	AudioFileName    sql.NullString `db:"audio_file_name"`
	Status           string         `db:"status"`
	EaseFactor       float64        `db:"ease_factor"`
	IntervalDays     float64        `db:"interval_days"`
	Due              sql.NullTime   `db:"due"`
	Lapses           int            `db:"lapses"`
}

const cardColumns = `id, language, position, front, back, definition, example_sentence,
	part_of_speech, gender, notes, image_attachments, audio_file_name,
	status, ease_factor, interval_days, due, lapses`

// CardStore keeps the card collection of one language in MySQL.
// Save replaces the collection inside one transaction.
type CardStore struct {
	db       *sqlx.DB
	language card.Language
}

func NewCardStore(db *sqlx.DB, language card.Language) *CardStore {
	return &CardStore{db: db, language: language}
}

func (s *CardStore) Load(ctx context.Context) ([]card.Card, error) {
	var rows []cardRow
	if err := s.db.SelectContext(ctx, &rows,
		"SELECT "+cardColumns+" FROM cards WHERE language = ? ORDER BY position",
		string(s.language)); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards) > %w", err)
	}

	cards := make([]card.Card, 0, len(rows))
	for _, row := range rows {
		c, err := row.toCard()
		if err != nil {
			return nil, fmt.Errorf("row.toCard(%s) > %w", row.ID, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (s *CardStore) Save(ctx context.Context, cards []card.Card) error {
	rows := make([]cardRow, len(cards))
	for i, c := range cards {
		row, err := newCardRow(c, s.language, i)
		if err != nil {
			return fmt.Errorf("newCardRow(%s) > %w", c.ID, err)
		}
		rows[i] = row
	}

	return RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE language = ?", string(s.language)); err != nil {
			return fmt.Errorf("tx.ExecContext(delete cards) > %w", err)
		}
		for start := 0; start < len(rows); start += insertBatchSize {
			end := min(start+insertBatchSize, len(rows))
			if _, err := tx.NamedExecContext(ctx,
				`INSERT INTO cards (`+cardColumns+`) VALUES (
					:id, :language, :position, :front, :back, :definition, :example_sentence,
					:part_of_speech, :gender, :notes, :image_attachments, :audio_file_name,
					:status, :ease_factor, :interval_days, :due, :lapses)`,
				rows[start:end]); err != nil {
				return fmt.Errorf("tx.NamedExecContext(insert cards) > %w", err)
			}
		}
		return nil
	})
}

func newCardRow(c card.Card, language card.Language, position int) (cardRow, error) {
	row := cardRow{
		ID:              c.ID.String(),
		Language:        string(language),
		Position:        position,
		Front:           c.Front,
		Back:            c.Back,
		Definition:      c.Definition,
		ExampleSentence: c.ExampleSentence,
		PartOfSpeech:    nullString(c.PartOfSpeech),
		Gender:          nullString(c.Gender),
		Notes:           nullString(c.Notes),
		AudioFileName:   nullString(c.AudioFileName),
		Status:          string(c.Status),
		EaseFactor:      c.EaseFactor,
		IntervalDays:    c.Interval,
		Lapses:          c.Lapses,
	}
	if len(c.ImageAttachments) > 0 {
		attachments, err := json.Marshal(c.ImageAttachments)
		if err != nil {
			return row, fmt.Errorf("json.Marshal(image attachments) > %w", err)
		}
		row.ImageAttachments = sql.NullString{String: string(attachments), Valid: true}
	}
	if c.Due != nil {
		row.Due = sql.NullTime{Time: *c.Due, Valid: true}
	}
	return row, nil
}

func (row cardRow) toCard() (card.Card, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return card.Card{}, fmt.Errorf("uuid.Parse() > %w", err)
	}
	c := card.Card{
		ID:              id,
		Front:           row.Front,
		Back:            row.Back,
		Definition:      row.Definition,
		ExampleSentence: row.ExampleSentence,
		PartOfSpeech:    stringPtr(row.PartOfSpeech),
		Gender:          stringPtr(row.Gender),
		Notes:           stringPtr(row.Notes),
		AudioFileName:   stringPtr(row.AudioFileName),
		Status:          card.Status(row.Status),
		EaseFactor:      row.EaseFactor,
		Interval:        row.IntervalDays,
		Lapses:          row.Lapses,
	}
	if !c.Status.IsValid() {
		return card.Card{}, fmt.Errorf("invalid card status %q", row.Status)
	}
	if row.ImageAttachments.Valid && row.ImageAttachments.String != "" {
		if err := json.Unmarshal([]byte(row.ImageAttachments.String), &c.ImageAttachments); err != nil {
			return card.Card{}, fmt.Errorf("json.Unmarshal(image attachments) > %w", err)
		}
	}
	if row.Due.Valid {
		due := row.Due.Time
		c.Due = &due
	}
	return c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
