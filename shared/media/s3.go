package media

import (
	"context"
	"fmt"
	"pawstay/infras/otel"
	"pawstay/infras/s3"
	"pawstay/shared/constant"

	"github.com/rs/zerolog/log"
)

type s3Media struct {
	client    s3.S3
	directory string
	otel      otel.Otel
}

// NewS3 keeps media objects under directory in the configured bucket.
func NewS3(client s3.S3, directory string, ot otel.Otel) Media {
	return &s3Media{
		client:    client,
		directory: directory,
		otel:      ot,
	}
}

func (m *s3Media) Save(ctx context.Context, file File) (ref string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = file.Validate(); err != nil {
		return constant.Empty, err
	}

	ref, err = m.client.UploadFileBytes(ctx, constant.Empty, m.directory, file.Name(), file.ContentType, file.Data)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload media: %w", err)
	}

	return ref, nil
}

func (m *s3Media) List(ctx context.Context, petID string) (names []string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = checkPetID(petID); err != nil {
		return nil, err
	}

	all, err := m.client.ListFiles(ctx, constant.Empty, m.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	for _, name := range all {
		if BelongsTo(name, petID) {
			names = append(names, name)
		}
	}

	return names, nil
}

func (m *s3Media) DeleteAll(ctx context.Context, petID string) (removed int, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".DeleteAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	names, err := m.List(ctx, petID)
	if err != nil {
		return 0, err
	}

	for _, name := range names {
		if err = m.client.DeleteFile(ctx, constant.Empty, m.directory, name); err != nil {
			log.Error().Err(err).Str("name", name).Msg("failed to delete media object")

			return removed, fmt.Errorf("failed to delete media: %w", err)
		}

		removed++
	}

	return removed, nil
}
