package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries"

var errNotFound = errors.New("word not found")

type Config struct {
	BaseURL        string
	Language       string
	CacheDirectory string
	Timeout        time.Duration
	RetryAttempts  uint
	RetryDelay     time.Duration
}

// DictionaryAPIClient reads the free dictionaryapi.dev entries endpoint.
type DictionaryAPIClient struct {
	config Config
	client *resty.Client
	cache  *FileCache
}

func NewDictionaryAPIClient(config Config) *DictionaryAPIClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 1
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 200 * time.Millisecond
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(config.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	return &DictionaryAPIClient{
		config: config,
		client: client,
		cache:  NewFileCache(config.CacheDirectory),
	}
}

type apiEntry struct {
	Word     string       `json:"word"`
	Meanings []apiMeaning `json:"meanings"`
}

type apiMeaning struct {
	PartOfSpeech *string         `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
	Synonyms     []string        `json:"synonyms"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
}

func (c *DictionaryAPIClient) Lookup(ctx context.Context, word string) (*Entry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}

	body, err := c.cache.cache(word, func() ([]byte, error) {
		return c.fetch(ctx, word)
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: json.Unmarshal > %w", ErrLookup, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0].toEntry(), nil
}

func (c *DictionaryAPIClient) fetch(ctx context.Context, word string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			res, err := c.client.R().
				SetContext(ctx).
				SetPathParams(map[string]string{
					"language": c.config.Language,
					"word":     word,
				}).
				Get("/{language}/{word}")
			if err != nil {
				return fmt.Errorf("client.R().Get() > %w", err)
			}

			switch status := res.StatusCode(); {
			case status == http.StatusNotFound:
				return retry.Unrecoverable(errNotFound)
			case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
				return fmt.Errorf("response error %d: %s", status, res.String())
			case status >= http.StatusBadRequest:
				return retry.Unrecoverable(fmt.Errorf("response error %d: %s", status, res.String()))
			}
			body = res.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.config.RetryAttempts),
		retry.Delay(c.config.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug("retrying dictionary lookup",
				slog.String("word", word),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (e apiEntry) toEntry() *Entry {
	entry := &Entry{
		Lemma:        e.Word,
		Translations: []string{},
	}
	if len(e.Meanings) == 0 {
		return entry
	}
	meaning := e.Meanings[0]
	entry.PartOfSpeech = meaning.PartOfSpeech
	if len(meaning.Definitions) > 0 {
		definition := meaning.Definitions[0].Definition
		entry.ShortDefinition = &definition
	}
	return entry
}
