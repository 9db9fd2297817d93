// Package camtparser parses ISO 20022 CAMT.052/053/054 bank statement XML
// into the document model. Element matching is namespace-agnostic, so the
// same paths work for every schema year and bank dialect.
package camtparser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/models"
	"fjacquet/camt-export/internal/parsererror"
	"fjacquet/camt-export/internal/xmlutils"

	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		xmlutils.SetLogger(logger)
		currencyutils.SetLogger(logger)
	}
}

// Payload roots of the three supported message types. Detection checks them
// in a fixed priority order so mixed or padded documents resolve the same
// way everywhere: statement first, then notification, then report.
var (
	pathStmtPayload   = xmlpath.MustCompile("//BkToCstmrStmt")
	pathNtfctnPayload = xmlpath.MustCompile("//BkToCstmrDbtCdtNtfctn")
	pathRptPayload    = xmlpath.MustCompile("//BkToCstmrAcctRpt")
)

var statementPaths = map[models.DocumentKind]*xmlpath.Path{
	models.KindCamt052: xmlpath.MustCompile("//BkToCstmrAcctRpt/Rpt"),
	models.KindCamt053: xmlpath.MustCompile("//BkToCstmrStmt/Stmt"),
	models.KindCamt054: xmlpath.MustCompile("//BkToCstmrDbtCdtNtfctn/Ntfctn"),
}

var groupHeaderPaths = map[models.DocumentKind]*xmlpath.Path{
	models.KindCamt052: xmlpath.MustCompile("//BkToCstmrAcctRpt/GrpHdr"),
	models.KindCamt053: xmlpath.MustCompile("//BkToCstmrStmt/GrpHdr"),
	models.KindCamt054: xmlpath.MustCompile("//BkToCstmrDbtCdtNtfctn/GrpHdr"),
}

var statementIDPaths = map[models.DocumentKind]*xmlpath.Path{
	models.KindCamt052: xmlpath.MustCompile("//BkToCstmrAcctRpt/Rpt/Id"),
	models.KindCamt053: xmlpath.MustCompile("//BkToCstmrStmt/Stmt/Id"),
	models.KindCamt054: xmlpath.MustCompile("//BkToCstmrDbtCdtNtfctn/Ntfctn/Id"),
}

// Parse reads a complete CAMT document from r and builds the document model.
func Parse(r io.Reader) (*models.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a complete CAMT document held in memory.
// Structural problems (empty input, unsupported root) return a named error
// and no document; missing optional elements never abort parsing.
func ParseBytes(data []byte) (*models.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, parsererror.ErrEmptyDocument
	}

	root, err := xmlutils.LoadBytes(data)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, parsererror.ErrEmptyDocument
		}
		return nil, &parsererror.ParseError{Parser: "CAMT", Source: "XML document", Err: err}
	}

	doc, err := parseDocument(root)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"kind":       doc.Kind.String(),
		"statements": len(doc.Statements),
		"entries":    doc.EntryCount(),
	}).Debug("Parsed CAMT document")
	return doc, nil
}

// ParseFile parses a CAMT.052/053/054 XML file and returns the document model.
// This is the main entry point for parsing CAMT XML files.
func ParseFile(xmlFile string) (*models.Document, error) {
	log.WithField("file", xmlFile).Info("Parsing CAMT XML file")

	data, err := os.ReadFile(xmlFile)
	if err != nil {
		log.WithError(err).Error("Failed to read XML file")
		return nil, fmt.Errorf("failed to read XML file: %w", err)
	}

	doc, err := ParseBytes(data)
	if err != nil {
		log.WithError(err).Error("Failed to parse CAMT XML file")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"file":       xmlFile,
		"kind":       doc.Kind.String(),
		"statements": len(doc.Statements),
		"entries":    doc.EntryCount(),
	}).Info("Successfully parsed CAMT XML file")
	return doc, nil
}

// DetectKind reports which CAMT message type the document carries.
// Priority when several payload roots are present: statement (053),
// then notification (054), then report (052).
func DetectKind(root *xmlpath.Node) models.DocumentKind {
	switch {
	case pathStmtPayload.Exists(root):
		return models.KindCamt053
	case pathNtfctnPayload.Exists(root):
		return models.KindCamt054
	case pathRptPayload.Exists(root):
		return models.KindCamt052
	default:
		return models.KindUnknown
	}
}

// ValidateFormat checks if a file is a valid CAMT.052/053/054 XML file.
// Unreadable files return an error; well-read files that are not CAMT
// simply return false.
func ValidateFormat(xmlFile string) (bool, error) {
	log.WithField("file", xmlFile).Info("Validating CAMT format")

	// Check if file exists
	if _, err := os.Stat(xmlFile); err != nil {
		log.WithError(err).Error("XML file does not exist")
		return false, fmt.Errorf("error checking XML file: %w", err)
	}

	f, err := os.Open(xmlFile)
	if err != nil {
		log.WithError(err).Error("Failed to open XML file")
		return false, fmt.Errorf("error opening XML file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close XML file")
		}
	}()

	root, err := xmlutils.Load(f)
	if err != nil {
		log.WithError(err).Debug("File is not valid XML")
		return false, nil // File is not valid XML, but we don't return an error
	}

	kind := DetectKind(root)
	if kind == models.KindUnknown {
		log.Debug("No CAMT payload element found, not a CAMT file")
		return false, nil
	}

	if !statementIDPaths[kind].Exists(root) {
		log.WithField("kind", kind.String()).Debug("Missing required statement ID, not a valid CAMT file")
		return false, nil
	}

	log.WithFields(logrus.Fields{
		"file": xmlFile,
		"kind": kind.String(),
	}).Info("File is a valid CAMT XML")
	return true, nil
}
