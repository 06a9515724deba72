package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"YSFinancials/models"
)

// ErrUnavailable is returned by a store that could not be opened at startup.
var ErrUnavailable = errors.New("inquiry store unavailable")

// InquiryStore is the write path for inquiries. There is deliberately no read method.
type InquiryStore interface {
	Insert(ctx context.Context, inq *models.Inquiry) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names a store implementation chosen from a connection string.
type Backend string

const (
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
	BackendMySQL    Backend = "mysql"
	BackendSQLite   Backend = "sqlite"
)

// ParseURI picks the backend for uri and returns the DSN its driver expects.
func ParseURI(uri string) (Backend, string, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return "", "", fmt.Errorf("%w: no connection string configured", ErrUnavailable)
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return BackendMongo, uri, nil
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return BackendPostgres, uri, nil
	case strings.HasPrefix(uri, "mysql://"):
		return BackendMySQL, strings.TrimPrefix(uri, "mysql://"), nil
	case strings.HasPrefix(uri, "sqlite://"):
		return BackendSQLite, strings.TrimPrefix(uri, "sqlite://"), nil
	case strings.HasPrefix(uri, "file:"), strings.HasSuffix(uri, ".db"), uri == ":memory:":
		return BackendSQLite, uri, nil
	}
	return "", "", fmt.Errorf("unsupported store connection string %q", Redact(uri))
}

// Open connects to the store named by uri and verifies it answers a ping.
func Open(ctx context.Context, uri string) (InquiryStore, error) {
	backend, dsn, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if backend == BackendMongo {
		s, err := OpenMongo(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := OpenGorm(ctx, backend, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type unavailableStore struct {
	reason error
}

// Unavailable returns a store whose every insert fails. The service keeps
// listening when the real store cannot be reached; submissions answer 500.
func Unavailable(reason error) InquiryStore {
	return &unavailableStore{reason: reason}
}

func (s *unavailableStore) Insert(context.Context, *models.Inquiry) error {
	return s.err()
}

func (s *unavailableStore) Ping(context.Context) error {
	return s.err()
}

func (s *unavailableStore) Close() error { return nil }

func (s *unavailableStore) err() error {
	switch {
	case s.reason == nil:
		return ErrUnavailable
	case errors.Is(s.reason, ErrUnavailable):
		return s.reason
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, s.reason)
}

// Redact hides credentials in a connection string for logs and errors.
func Redact(uri string) string {
	at := strings.LastIndex(uri, "@")
	scheme := strings.Index(uri, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return uri
	}
	return uri[:scheme+3] + "***" + uri[at:]
}
