package manifest

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milkrun/internal/common"
	"milkrun/internal/model"
)

func TestReadRecords(t *testing.T) {
	input := strings.Join([]string{
		"CustomerNumber,AccountName,Address,ItemID,Description,Quantity,RouteNote",
		`1,A,"1255 Liberty St",x1,Widget-blue,2,leave at dock`,
		`1,A,"1255 Liberty St",x2,Widget-red,1,`,
		"2,B,9 Bonnyview Rd", // short row
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "1", first.Get(model.ColCustomerNumber))
	assert.Equal(t, "1255 Liberty St", first.Get(model.ColAddress))
	assert.Equal(t, "leave at dock", first.Get("RouteNote"), "extra columns pass through")

	short := records[2]
	assert.Equal(t, "2", short.Get(model.ColCustomerNumber))
	assert.Equal(t, "", short.Get(model.ColItemID), "short rows leave trailing fields empty")
	assert.Equal(t, "", short.Get("RouteNote"))
}

// brokenReader serves its buffered data, then fails every subsequent read
// with the same error, the way a disk fault or closed pipe behaves.
type brokenReader struct {
	data []byte
	err  error
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReadRecords_PersistentReadErrorReturns(t *testing.T) {
	r := &brokenReader{
		data: []byte("CustomerNumber,AccountName\n1,A\n"),
		err:  errors.New("read /dev/route: input/output error"),
	}

	done := make(chan struct{})
	var err error
	go func() {
		_, err = ReadRecords(r)
		close(done)
	}()

	select {
	case <-done:
		assert.ErrorIs(t, err, common.ErrInvalidManifest)
	case <-time.After(2 * time.Second):
		t.Fatal("ReadRecords never returned on a persistent non-EOF read error")
	}
}

func TestReadRecords_MalformedRowSkippedRestKept(t *testing.T) {
	input := strings.Join([]string{
		"CustomerNumber,AccountName",
		`1,"bad"name,x`, // quote error in this row only
		"2,B",
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0].Get(model.ColCustomerNumber))
}

func TestReadRecords_EmptyInput(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""))
	assert.ErrorIs(t, err, common.ErrInvalidManifest)
}

func TestReadRecords_HeaderOnly(t *testing.T) {
	records, err := ReadRecords(strings.NewReader("CustomerNumber,AccountName,Address\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteRecords_RoundTrip(t *testing.T) {
	input := strings.Join([]string{
		"CustomerNumber,AccountName,Address,RouteNote",
		"1,A,1255 Liberty St,dock",
		"2,B,9 Bonnyview Rd,",
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	again, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, again, len(records))
	for i := range records {
		assert.Equal(t, records[i].Fields, again[i].Fields)
		assert.Equal(t, records[i].Columns, again[i].Columns)
	}
}

func TestWriteRecords_MergesLateColumns(t *testing.T) {
	a := model.NewRecord([]string{"CustomerNumber"})
	a.Set("CustomerNumber", "1")

	b := model.NewRecord([]string{"CustomerNumber", "Extra"})
	b.Set("CustomerNumber", "2")
	b.Set("Extra", "x")

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, []model.Record{a, b}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "CustomerNumber,Extra", lines[0])
	assert.Equal(t, "1,", lines[1])
	assert.Equal(t, "2,x", lines[2])
}

func TestWriteRecords_EmptyUsesCanonicalHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil))
	assert.Equal(t, strings.Join(model.ExportColumns, ","), strings.TrimSpace(buf.String()))
}
