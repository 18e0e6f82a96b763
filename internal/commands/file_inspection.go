package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/temirov/snapsource/internal/transform"
	"github.com/temirov/snapsource/internal/utils"
)

const (
	// OversizedPlaceholderFormat replaces the content of files larger than the size limit.
	OversizedPlaceholderFormat = "[File content not included. Size (%d bytes) exceeds the maximum allowed size (%d bytes)]"
	// BinaryPlaceholder replaces the content of files classified as binary.
	BinaryPlaceholder = "[Binary file content not included]"
	// ReadErrorPlaceholderFormat replaces the content of files that could not be read.
	ReadErrorPlaceholderFormat = "[Error reading file: %s]"

	invalidUTF8Replacement = "\uFFFD"
)

type fileInspectionConfig struct {
	MaxFileSize int64
	Transform   transform.Options
}

type fileInspectionOutcome int

const (
	inspectionText fileInspectionOutcome = iota
	inspectionOversized
	inspectionBinary
	inspectionFailed
)

type fileInspectionResult struct {
	Outcome   fileInspectionOutcome
	Content   string
	SizeBytes int64
	Failure   error
}

// inspectFile applies the size gate before any read, then the binary gate, then the
// optional text transforms.
func inspectFile(path string, config fileInspectionConfig) fileInspectionResult {
	fileInfo, statError := os.Stat(path)
	if statError != nil {
		return readFailure(statError)
	}
	if fileInfo.IsDir() {
		return readFailure(fmt.Errorf("%s is a directory", fileInfo.Name()))
	}

	sizeBytes := fileInfo.Size()
	if sizeBytes > config.MaxFileSize {
		return fileInspectionResult{
			Outcome:   inspectionOversized,
			Content:   fmt.Sprintf(OversizedPlaceholderFormat, sizeBytes, config.MaxFileSize),
			SizeBytes: sizeBytes,
		}
	}

	// #nosec G304
	fileBytes, readError := os.ReadFile(path)
	if readError != nil {
		return readFailure(readError)
	}
	if utils.IsBinary(fileBytes) {
		return fileInspectionResult{Outcome: inspectionBinary, Content: BinaryPlaceholder, SizeBytes: sizeBytes}
	}

	text := strings.ToValidUTF8(string(fileBytes), invalidUTF8Replacement)
	if config.Transform.Enabled() {
		text = transform.Apply(text, config.Transform)
	}
	return fileInspectionResult{Outcome: inspectionText, Content: text, SizeBytes: sizeBytes}
}

func readFailure(failure error) fileInspectionResult {
	return fileInspectionResult{
		Outcome: inspectionFailed,
		Content: fmt.Sprintf(ReadErrorPlaceholderFormat, fileFailureReason(failure)),
		Failure: failure,
	}
}
