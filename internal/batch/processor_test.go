package batch

import (
	"errors"
	"fmt"
	"testing"

	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/logging"
	"fjacquet/camt-export/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocument builds a one-entry statement for the given account.
func fakeDocument(iban string, minor int64) *models.Document {
	return &models.Document{
		Kind: models.KindCamt053,
		Statements: []models.Statement{
			{
				ID: "STMT-" + iban,
				Account: models.Account{
					ID:       models.AccountID{IBAN: iban},
					Currency: "CHF",
				},
				Entries: []models.Entry{
					{
						Amount:         models.CurrencyAmount{Currency: "CHF", Minor: minor},
						IsCredit:       true,
						BookingDate:    "2024-01-05",
						BookingDateInt: 20240105,
						Status:         "BOOK",
					},
				},
			},
		},
	}
}

func headerFreeOptions() export.Options {
	opts := export.DefaultOptions()
	opts.IncludeHeader = false
	return opts
}

func TestProcessFilesSingleFile(t *testing.T) {
	logger := logging.NewMockLogger()
	processor := NewProcessor(logger, headerFreeOptions())

	parse := func(path string) (*models.Document, error) {
		assert.Equal(t, "only.xml", path)
		return fakeDocument("CH9300762011623852957", 15050), nil
	}

	outcomes := processor.ProcessFiles([]string{"only.xml"}, parse)
	require.Len(t, outcomes, 1)

	outcome := outcomes[0]
	assert.Equal(t, "only.xml", outcome.File)
	require.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Doc)
	require.Len(t, outcome.Rows, 1)
	assert.Equal(t, "CH9300762011623852957", outcome.Rows[0][export.FieldAccountIBAN].Display)
	assert.Equal(t, "150.50", outcome.Rows[0][export.FieldAmount].Display)
}

func TestProcessFilesKeepsInputOrder(t *testing.T) {
	logger := logging.NewMockLogger()
	processor := NewProcessor(logger, headerFreeOptions())

	var files []string
	docs := make(map[string]*models.Document)
	for i := 0; i < 12; i++ {
		path := fmt.Sprintf("statement-%02d.xml", i)
		files = append(files, path)
		docs[path] = fakeDocument(fmt.Sprintf("CH%02d00762011623852957", i), int64(1000+i))
	}

	parse := func(path string) (*models.Document, error) {
		doc, ok := docs[path]
		if !ok {
			return nil, errors.New("unexpected path " + path)
		}
		return doc, nil
	}

	outcomes := processor.ProcessFiles(files, parse)
	require.Len(t, outcomes, len(files))

	for i, outcome := range outcomes {
		assert.Equal(t, files[i], outcome.File)
		require.NoError(t, outcome.Err)
		require.Len(t, outcome.Rows, 1)
		wantIBAN := fmt.Sprintf("CH%02d00762011623852957", i)
		assert.Equal(t, wantIBAN, outcome.Rows[0][export.FieldAccountIBAN].Display)
	}

	assert.True(t, logger.HasEntry("DEBUG", "Concurrent file processing completed"))
}

func TestProcessFilesKeepsGoingAfterFailure(t *testing.T) {
	logger := logging.NewMockLogger()
	processor := NewProcessor(logger, headerFreeOptions())

	files := []string{"good.xml", "broken.xml", "also-good.xml"}
	parseErr := errors.New("malformed document")

	parse := func(path string) (*models.Document, error) {
		if path == "broken.xml" {
			return nil, parseErr
		}
		return fakeDocument("CH9300762011623852957", 2000), nil
	}

	outcomes := processor.ProcessFiles(files, parse)
	require.Len(t, outcomes, 3)

	assert.NoError(t, outcomes[0].Err)
	assert.Len(t, outcomes[0].Rows, 1)

	assert.ErrorIs(t, outcomes[1].Err, parseErr)
	assert.Nil(t, outcomes[1].Doc)
	assert.Empty(t, outcomes[1].Rows)

	assert.NoError(t, outcomes[2].Err)
	assert.Len(t, outcomes[2].Rows, 1)
}

func TestProcessFilesEmptyInput(t *testing.T) {
	logger := logging.NewMockLogger()
	processor := NewProcessor(logger, headerFreeOptions())

	parse := func(string) (*models.Document, error) {
		t.Fatal("parse must not be called")
		return nil, nil
	}

	outcomes := processor.ProcessFiles(nil, parse)
	assert.Empty(t, outcomes)
}
