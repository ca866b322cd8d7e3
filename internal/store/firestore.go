package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/kzmarket/productseed/internal/config"
	"github.com/kzmarket/productseed/internal/product"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const countAlias = "all"

// FirestoreStore writes products to a Firestore collection.
// Timestamps rely on the serverTimestamp tag of product.Product.
type FirestoreStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
	logger     *zap.Logger
}

// NewFirestoreStore connects to the project in cfg. An empty project ID is
// detected from the credentials. FIRESTORE_EMULATOR_HOST is honoured by the client.
func NewFirestoreStore(ctx context.Context, cfg config.Firestore, logger *zap.Logger) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	collection := client.Collection(cfg.Collection)

	// The reference path carries the detected project, cfg may not
	logger.Info("connected to firestore",
		zap.String("project", projectFromPath(collection.Path)),
		zap.String("collection", cfg.Collection),
	)

	return &FirestoreStore{
		client:     client,
		collection: collection,
		logger:     logger,
	}, nil
}

// projectFromPath extracts the project ID from a resource path of the form
// projects/{project}/databases/{database}/documents/...
func projectFromPath(path string) string {
	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 2 || parts[0] != "projects" {
		return ""
	}
	return parts[1]
}

func (s *FirestoreStore) Upsert(ctx context.Context, p product.Product) error {
	if _, err := s.collection.Doc(p.Barcode).Set(ctx, p); err != nil {
		return fmt.Errorf("set %s: %w", p.Barcode, err)
	}
	return nil
}

func (s *FirestoreStore) Get(ctx context.Context, barcode string) (product.Product, error) {
	snap, err := s.collection.Doc(barcode).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return product.Product{}, ErrNotFound
		}
		return product.Product{}, fmt.Errorf("get %s: %w", barcode, err)
	}

	var p product.Product
	if err := snap.DataTo(&p); err != nil {
		return product.Product{}, fmt.Errorf("decode %s: %w", barcode, err)
	}
	return p, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, barcode string) error {
	if _, err := s.collection.Doc(barcode).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", barcode, err)
	}
	return nil
}

func (s *FirestoreStore) Count(ctx context.Context) (int64, error) {
	res, err := s.collection.NewAggregationQuery().WithCount(countAlias).Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.collection.ID, err)
	}

	v, ok := res[countAlias].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count %s: unexpected aggregation result %T", s.collection.ID, res[countAlias])
	}
	return v.GetIntegerValue(), nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// ProvideStore opens the Firestore store, or an in-memory one for dry runs.
// The cleanup closes the underlying client.
func ProvideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	if cfg.DryRun {
		logger.Info("dry run, writing to an in-memory collection")
		return NewMemoryStore(), func() {}, nil
	}

	s, err := NewFirestoreStore(ctx, cfg.Firestore, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close firestore client", zap.Error(err))
		}
	}
	return s, cleanup, nil
}
