// Package msdoc provides comprehensive functionality for reading and parsing Microsoft Word .doc files.
//
// This package implements the complete MS-DOC binary file format specification, allowing
// extraction of text content, metadata, embedded objects, VBA macros, and formatting
// from Word 97-2003 documents, including encrypted/password-protected documents.
// Creating new documents or modifying existing ones is not supported.
//
// Basic reading usage:
//
//	doc, err := msdoc.Open("document.doc")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer doc.Close()
//
//	text, err := doc.Text()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(text)
//
//	metadata := doc.Metadata()
//	fmt.Printf("Title: %s\n", metadata.Title)
//	fmt.Printf("Author: %s\n", metadata.Author)
//
// Reading encrypted documents:
//
//	doc, err := msdoc.OpenWithPassword("encrypted.doc", "password123")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer doc.Close()
package msdoc

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/TalentFormula/msdoc/crypto"
	"github.com/TalentFormula/msdoc/fib"
	"github.com/TalentFormula/msdoc/formatting"
	"github.com/TalentFormula/msdoc/macros"
	"github.com/TalentFormula/msdoc/metadata"
	"github.com/TalentFormula/msdoc/objects"
	"github.com/TalentFormula/msdoc/ole2"
	"github.com/TalentFormula/msdoc/streams"
)

// Document represents a loaded Microsoft Word .doc file.
// It provides methods for extracting text content, metadata, embedded objects,
// macros, and formatting information. It also supports decryption of encrypted documents.
type Document struct {
	file      *os.File
	reader    *ole2.Reader
	fib       *fib.FileInformationBlock
	password  string // For encrypted documents
	decryptor *crypto.RC4 // For encrypted documents
	logger    *slog.Logger

	// Lazy-loaded components
	objectPool    *objects.ObjectPool
	macroExtractor *macros.MacroExtractor
	metadataExtractor *metadata.MetadataExtractor
}

// Option configures Open. The zero value of every Option field is the
// default: no password, and log/slog's default logger.
type Option func(*options)

type options struct {
	password string
	logger   *slog.Logger
}

// WithPassword supplies the password for an encrypted document, the
// functional-options equivalent of the old OpenWithPassword signature.
func WithPassword(password string) Option {
	return func(o *options) { o.password = password }
}

// WithLogger sets the logger Open and subsequent Document methods use
// to report non-fatal conditions (e.g. metadata that failed to parse).
// Defaults to slog.Default() when not supplied.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Metadata holds comprehensive document metadata information.
// This is an alias for metadata.DocumentMetadata for backward compatibility.
type Metadata = metadata.DocumentMetadata

// TextRun represents a run of text with consistent formatting.
// This is an alias for formatting.TextRun.
type TextRun = formatting.TextRun

// EmbeddedObject represents an object embedded in the document.
// This is an alias for objects.EmbeddedObject.
type EmbeddedObject = objects.EmbeddedObject

// VBAProject represents a VBA project contained in the document.
// This is an alias for macros.VBAProject.
type VBAProject = macros.VBAProject

// Open reads and parses the given .doc file.
// It prepares the document for further operations like text extraction.
//
// The file must be a valid Microsoft Word .doc file (Word 97-2003 format).
// For encrypted documents, pass WithPassword.
//
// Returns an error if the file cannot be opened, is not a valid .doc file,
// or if the internal OLE2 structure is corrupted.
func Open(filename string, opts ...Option) (*Document, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}

	oleReader, err := ole2.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create OLE2 reader: %w", err)
	}

	// The FIB is located at the start of the "WordDocument" stream.
	wordDocumentData, err := oleReader.ReadStream("WordDocument")
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("could not find WordDocument stream: %w", err)
	}

	wordDocumentStream, err := streams.NewWordDocumentStream(wordDocumentData)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to parse FIB: %w", err)
	}

	doc := &Document{
		file:     file,
		reader:   oleReader,
		fib:      wordDocumentStream.FIB,
		password: o.password,
		logger:   o.logger,
	}

	// Initialize lazy-loaded components
	doc.objectPool = objects.NewObjectPool(oleReader)
	doc.macroExtractor = macros.NewMacroExtractor(oleReader)
	doc.metadataExtractor = metadata.NewMetadataExtractor(oleReader)

	// Handle encryption if document is encrypted
	if doc.fib.IsEncrypted() {
		if o.password == "" {
			file.Close()
			return nil, fmt.Errorf("document is encrypted but no password provided")
		}

		if err := doc.setupDecryption(); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to setup decryption: %w", err)
		}
	}

	return doc, nil
}

// OpenWithPassword opens an encrypted .doc file with the provided password.
// Equivalent to Open(filename, WithPassword(password)); kept as a
// convenience for the single most common non-default option.
//
// Returns an error if the file cannot be opened, is not a valid .doc file,
// the password is incorrect, or if decryption fails.
func OpenWithPassword(filename, password string) (*Document, error) {
	return Open(filename, WithPassword(password))
}

// setupDecryption initializes decryption for encrypted documents.
func (d *Document) setupDecryption() error {
	// Get the table stream name
	tableStreamName := d.fib.GetTableStreamName()
	tableStream, err := d.reader.ReadStream(tableStreamName)
	if err != nil {
		return fmt.Errorf("failed to read table stream %s: %w", tableStreamName, err)
	}

	// Parse encryption header
	encHeader, err := crypto.ParseEncryptionHeader(tableStream)
	if err != nil {
		return fmt.Errorf("failed to parse encryption header: %w", err)
	}

	// Create decryption cipher
	decryptor, err := encHeader.CreateDecryptionCipher(d.password)
	if err != nil {
		return fmt.Errorf("failed to create decryption cipher: %w", err)
	}

	d.decryptor = decryptor
	return nil
}

// Close closes the underlying .doc file and releases associated resources.
// It is safe to call Close multiple times.
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// IsEncrypted returns true if the document is encrypted.
func (d *Document) IsEncrypted() bool {
	return d.fib.IsEncrypted()
}

// HasMacros returns true if the document contains VBA macros.
func (d *Document) HasMacros() bool {
	return d.macroExtractor.HasMacros()
}

// HasEmbeddedObjects returns true if the document contains embedded objects.
func (d *Document) HasEmbeddedObjects() bool {
	// Load objects if not already loaded
	if err := d.objectPool.LoadObjects(); err != nil {
		return false
	}
	return len(d.objectPool.GetAllObjects()) > 0
}

// GetFormattedText extracts the main document story as a sequence of
// TextRuns, starting a new run each time the composed character
// properties change.
func (d *Document) GetFormattedText() ([]*TextRun, error) {
	if d.fib.IsEncrypted() && d.decryptor == nil {
		return nil, fmt.Errorf("document is encrypted but decryption is not available")
	}

	drv, err := d.buildDriver()
	if err != nil {
		return nil, err
	}

	sink := &runSink{}
	if err := drv.Run(sink); err != nil {
		return nil, fmt.Errorf("msdoc: %w", err)
	}
	sink.flush()

	return sink.runs, nil
}

// GetEmbeddedObjects returns all embedded objects in the document.
func (d *Document) GetEmbeddedObjects() (map[uint32]*EmbeddedObject, error) {
	if err := d.objectPool.LoadObjects(); err != nil {
		return nil, fmt.Errorf("failed to load embedded objects: %w", err)
	}
	return d.objectPool.GetAllObjects(), nil
}

// GetEmbeddedObject returns a specific embedded object by position.
func (d *Document) GetEmbeddedObject(position uint32) (*EmbeddedObject, error) {
	if err := d.objectPool.LoadObjects(); err != nil {
		return nil, fmt.Errorf("failed to load embedded objects: %w", err)
	}
	return d.objectPool.ExtractObject(position)
}

// GetVBAProject extracts the VBA project from the document.
// Returns an error if the document does not contain macros.
func (d *Document) GetVBAProject() (*VBAProject, error) {
	return d.macroExtractor.ExtractProject()
}

// GetVBACode returns the VBA code for a specific module.
func (d *Document) GetVBACode(moduleName string) (string, error) {
	project, err := d.GetVBAProject()
	if err != nil {
		return "", err
	}

	code, exists := project.GetModuleCode(moduleName)
	if !exists {
		return "", fmt.Errorf("module %s not found", moduleName)
	}

	return code, nil
}

// GetAllVBAModules returns the names of all VBA modules in the document.
func (d *Document) GetAllVBAModules() ([]string, error) {
	project, err := d.GetVBAProject()
	if err != nil {
		return nil, err
	}

	return project.GetAllModuleNames(), nil
}
