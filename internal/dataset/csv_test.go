package dataset_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/podium/internal/dataset"
	"github.com/okian/podium/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `"ID","Name","Sex","Age","Height","Weight","Team","NOC","Games","Year","Season","City","Sport","Event","Medal"
"1","A Dijiang","M",24,180,80,"China","CHN","1992 Summer",1992,"Summer","Barcelona","Basketball","Basketball Men's Basketball",NA
"4","Edgar Lindenau Aabye","M",34,NA,NA,"Denmark/Sweden","DEN","1900 Summer",1900,"Summer","Paris","Tug-Of-War","Tug-Of-War Men's Tug-Of-War",Gold
"5","Christine Jacoba Aaftink","F",NA,185,82,"Netherlands","NED","1988 Winter",1988,"Winter","Calgary","Speed Skating","Speed Skating Women's 500 metres",NA
`

const header = "ID,Name,Sex,Age,Height,Weight,Team,NOC,Games,Year,Season,City,Sport,Event,Medal\n"

func TestRead(t *testing.T) {
	records, err := dataset.Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "A Dijiang", first.Name)
	assert.Equal(t, model.Male, first.Sex)
	assert.Equal(t, model.Some(24), first.Age)
	assert.Equal(t, model.Some(180.0), first.Height)
	assert.Equal(t, "CHN", first.NOC)
	assert.Equal(t, 1992, first.Year)
	assert.Equal(t, "Basketball", first.Sport)
	assert.Equal(t, model.NoMedal, first.Medal)

	second := records[1]
	assert.False(t, second.Height.Valid(), "NA height must be missing, not zero")
	assert.False(t, second.Weight.Valid())
	assert.Equal(t, model.Gold, second.Medal)

	third := records[2]
	assert.Equal(t, model.Female, third.Sex)
	assert.False(t, third.Age.Valid())
}

func TestReadColumnOrder(t *testing.T) {
	in := "Medal,Year,NOC,ID,Name,Sex,Age,Height,Weight,Team,Games,Season,City,Sport,Event,Extra\n" +
		"Silver,2016,USA,7,X,F,22.0,,,United States,2016 Summer,Summer,Rio de Janeiro,Rowing,Rowing Women's Eight,ignored\n"

	records, err := dataset.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.Silver, records[0].Medal)
	assert.Equal(t, 2016, records[0].Year)
	assert.Equal(t, model.Some(22), records[0].Age)
	assert.Equal(t, "USA", records[0].NOC)
}

func TestReadNonFiniteMeasurements(t *testing.T) {
	in := header +
		"1,A,M,20,NaN,Inf,T,USA,G,2000,S,C,Sp,E,NA\n" +
		"2,B,F,21,-Infinity,nan,T,USA,G,2000,S,C,Sp,E,NA\n"

	records, err := dataset.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.False(t, r.Height.Valid(), "row %d height", r.ID)
		assert.False(t, r.Weight.Valid(), "row %d weight", r.ID)
	}
	assert.Equal(t, model.Some(20), records[0].Age)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{name: "empty input", in: "", want: dataset.ErrMissingColumn},
		{name: "missing column", in: "ID,Name\n1,A\n", want: dataset.ErrMissingColumn},
		{name: "bad id", in: header + "x,A,M,20,,,T,USA,G,2000,S,C,Sp,E,NA\n", want: dataset.ErrMalformedRow},
		{name: "bad year", in: header + "1,A,M,20,,,T,USA,G,two,S,C,Sp,E,NA\n", want: dataset.ErrMalformedRow},
		{name: "fractional age", in: header + "1,A,M,20.5,,,T,USA,G,2000,S,C,Sp,E,NA\n", want: dataset.ErrNotInteger},
		{name: "unknown medal", in: header + "1,A,M,20,,,T,USA,G,2000,S,C,Sp,E,Tin\n", want: model.ErrUnknownMedal},
		{name: "short row", in: header + "1,A,M\n", want: dataset.ErrMalformedRow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dataset.Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWrite(t *testing.T) {
	records, err := dataset.Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dataset.Write(&buf, records[1:2]))

	want := header +
		"4,Edgar Lindenau Aabye,M,34,,,Denmark/Sweden,DEN,1900 Summer,1900,Summer,Paris,Tug-Of-War,Tug-Of-War Men's Tug-Of-War,Gold\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dataset.Write(&buf, nil))
	assert.Equal(t, header, buf.String(), "an empty set exports a header-only CSV")
}

func TestWriteReadBack(t *testing.T) {
	records, err := dataset.Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dataset.Write(&buf, records))

	again, err := dataset.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "athlete_events.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	records, err := dataset.Open(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = dataset.Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dataset.Open(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
