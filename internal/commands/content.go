package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/temirov/snapsource/internal/ignore"
	"github.com/temirov/snapsource/internal/transform"
	"github.com/temirov/snapsource/internal/types"
	"github.com/temirov/snapsource/internal/utils"
	"go.uber.org/zap"
)

// FileCollector gathers file records below Root. Unlike the tree, collection has no depth limit.
type FileCollector struct {
	Root        string
	Matcher     *ignore.Matcher
	MaxFileSize int64
	Transform   transform.Options
	Logger      *zap.Logger
}

// Collect walks paths in the order given and returns one record per non-ignored file.
// Directories contribute their files in listing order, depth first. Per-file failures
// become placeholder records; only context cancellation stops the walk.
func (collector *FileCollector) Collect(ctx context.Context, paths []string) ([]types.FileRecord, error) {
	var records []types.FileRecord
	for _, inputPath := range paths {
		if contextError := ctx.Err(); contextError != nil {
			return nil, contextError
		}
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			absolutePath = filepath.Clean(inputPath)
		}

		pathInfo, statError := os.Stat(absolutePath)
		if statError != nil || !pathInfo.IsDir() {
			if record, included := collector.collectFile(absolutePath); included {
				records = append(records, record)
			}
			continue
		}

		directoryRecords, collectError := collector.collectDirectory(ctx, absolutePath, []os.FileInfo{pathInfo})
		if collectError != nil {
			return nil, collectError
		}
		records = append(records, directoryRecords...)
	}
	return records, nil
}

func (collector *FileCollector) collectDirectory(ctx context.Context, directoryPath string, ancestors []os.FileInfo) ([]types.FileRecord, error) {
	if contextError := ctx.Err(); contextError != nil {
		return nil, contextError
	}
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		collector.logger().Warn("unable to read directory", zap.String("path", directoryPath), zap.Error(readDirectoryError))
		return nil, nil
	}

	var records []types.FileRecord
	for _, directoryEntry := range visibleDirectoryEntries(directoryEntries, directoryPath, collector.Root, collector.Matcher.MatchesEntry) {
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())
		entryInfo, statError := os.Stat(entryPath)
		if statError == nil && entryInfo.IsDir() {
			if isAncestor(entryInfo, ancestors) {
				collector.logger().Warn("skipping directory cycle", zap.String("path", entryPath))
				continue
			}
			nestedRecords, nestedError := collector.collectDirectory(ctx, entryPath, withAncestor(ancestors, entryInfo))
			if nestedError != nil {
				return nil, nestedError
			}
			records = append(records, nestedRecords...)
			continue
		}
		if record, included := collector.collectFile(entryPath); included {
			records = append(records, record)
		}
	}
	return records, nil
}

// collectFile returns the record for a single file, or false when the file is ignored.
func (collector *FileCollector) collectFile(absolutePath string) (types.FileRecord, bool) {
	relativePath, relativeError := utils.RelativeSlashPath(absolutePath, collector.Root)
	if relativeError != nil {
		relativePath = filepath.ToSlash(absolutePath)
	}
	if collector.Matcher.Matches(relativePath) {
		return types.FileRecord{}, false
	}

	result := inspectFile(absolutePath, fileInspectionConfig{
		MaxFileSize: collector.maxFileSize(),
		Transform:   collector.Transform,
	})
	switch result.Outcome {
	case inspectionOversized:
		collector.logger().Debug("file exceeds size limit", zap.String("path", relativePath), zap.Int64("size_bytes", result.SizeBytes), zap.Int64("limit_bytes", collector.maxFileSize()))
	case inspectionBinary:
		collector.logger().Debug("binary content excluded", zap.String("path", relativePath))
	case inspectionFailed:
		collector.logger().Warn("unable to read file", zap.String("path", relativePath), zap.Error(result.Failure))
	}
	return types.FileRecord{RelativePath: relativePath, Content: result.Content}, true
}

func (collector *FileCollector) maxFileSize() int64 {
	if collector.MaxFileSize <= 0 {
		return types.DefaultMaxFileSize
	}
	return collector.MaxFileSize
}

func (collector *FileCollector) logger() *zap.Logger {
	if collector.Logger == nil {
		return zap.NewNop()
	}
	return collector.Logger
}
