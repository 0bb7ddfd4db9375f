package media

import (
	"context"
	"fmt"
	"path/filepath"
	"pawstay/infras/otel"
	"pawstay/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

type localMedia struct {
	fs   afero.Fs
	dir  string
	otel otel.Otel
}

func NewLocal(fs afero.Fs, dir string, ot otel.Otel) (Media, error) {
	if err := fs.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &localMedia{
		fs:   fs,
		dir:  dir,
		otel: ot,
	}, nil
}

func (m *localMedia) Save(ctx context.Context, file File) (ref string, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = file.Validate(); err != nil {
		return constant.Empty, err
	}

	path := filepath.Join(m.dir, file.Name())

	scope.SetAttribute("file_name", file.Name())

	if err = afero.WriteFile(m.fs, path, file.Data, fileMode); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to write media file")

		return constant.Empty, fmt.Errorf("failed to write media file: %w", err)
	}

	return path, nil
}

func (m *localMedia) List(ctx context.Context, petID string) (names []string, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	matches, err := m.match(petID)
	if err != nil {
		return nil, err
	}

	for _, match := range matches {
		names = append(names, filepath.Base(match))
	}

	return names, nil
}

func (m *localMedia) DeleteAll(ctx context.Context, petID string) (removed int, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".DeleteAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	matches, err := m.match(petID)
	if err != nil {
		return 0, err
	}

	for _, match := range matches {
		if err = m.fs.Remove(match); err != nil {
			log.Error().Err(err).Str("path", match).Msg("failed to remove media file")

			return removed, fmt.Errorf("failed to remove media file: %w", err)
		}

		removed++
	}

	return removed, nil
}

func (m *localMedia) match(petID string) ([]string, error) {
	if err := checkPetID(petID); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(m.fs, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read media directory: %w", err)
	}

	matches := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() && BelongsTo(entry.Name(), petID) {
			matches = append(matches, filepath.Join(m.dir, entry.Name()))
		}
	}

	return matches, nil
}
