package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"resumelens/internal/errors"
	"resumelens/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// ReadFile reads content from a file with proper error handling
func (fp *FileProcessor) ReadFile(filename string) (string, error) {
	data, err := fp.ReadFileBytes(filename, 0)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFileBytes reads raw file content. A positive maxSize rejects files
// larger than that many bytes before reading them.
func (fp *FileProcessor) ReadFileBytes(filename string, maxSize int64) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			// Log the error but don't override the main operation result
			if fp.logger != nil {
				fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
			}
		}
	}()

	if maxSize > 0 {
		info, err := file.Stat()
		if err != nil {
			return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Cannot stat file: %s", filename), err)
		}
		if info.Size() > maxSize {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("File %s exceeds the size limit of %s",
					filename, utils.FormatFileSize(maxSize)), nil)
		}
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}

	return content, nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	err := os.WriteFile(filename, []byte(content), 0600)
	if err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ReadResumePDF validates and reads the resume PDF respecting the size limit
func (fp *FileProcessor) ReadResumePDF(filename string, maxSize int64) ([]byte, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		return nil, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	if !utils.IsPDFFile(filename) {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Resume must be a PDF file: %s", filename), nil)
	}

	return fp.ReadFileBytes(filename, maxSize)
}

// ValidateAndReadFiles validates and reads multiple text input files
func (fp *FileProcessor) ValidateAndReadFiles(filenames ...string) ([]string, error) {
	contents := make([]string, len(filenames))

	for i, filename := range filenames {
		if err := utils.ValidateInputFile(filename); err != nil {
			return nil, errors.NewValidationError("INVALID_INPUT_FILE",
				fmt.Sprintf("Invalid file %s", filename), err)
		}

		// Warn about non-text files
		if !utils.IsTextFile(filename) {
			if fp.logger != nil {
				fp.logger.Warn("File may not be a text file",
					"filename", filename)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: %s may not be a text file\n", filename)
			}
		}

		content, err := fp.ReadFile(filename)
		if err != nil {
			return nil, err // Error already wrapped by ReadFile
		}

		contents[i] = content
	}

	return contents, nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
