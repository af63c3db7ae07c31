package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/podium/internal/adapters/http/api"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/dataset"
	"github.com/okian/podium/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `ID,Name,Sex,Age,Height,Weight,Team,NOC,Games,Year,Season,City,Sport,Event,Medal
1,Ann,F,22,170,60,United States,USA,2000 Summer,2000,Summer,Sydney,Swimming,Swimming Women's 100m,Gold
2,Ben,M,25,180,75,United States,USA,2004 Summer,2004,Summer,Athina,Swimming,Swimming Men's 100m,NA
3,Cat,F,30,165,55,France,FRA,2000 Summer,2000,Summer,Sydney,Fencing,Fencing Women's Foil,Silver
4,Dan,M,NA,NA,NA,Germany,GER,1896 Summer,1896,Summer,Athina,Athletics,Athletics Men's Marathon,Bronze
5,Eve,F,19,160,50,France,FRA,2004 Summer,2004,Summer,Athina,Fencing,Fencing Women's Foil,Gold
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "athlete_events.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	return path
}

// run executes podiumctl with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestDomainsCommand(t *testing.T) {
	out, _, err := run(t, "domains", "--data", writeFixture(t))
	require.NoError(t, err)

	var got struct {
		Countries      []string `json:"countries"`
		Years          []int    `json:"years"`
		AgeMin         int      `json:"age_min"`
		AgeMax         int      `json:"age_max"`
		CountryChoices []struct {
			Any   bool   `json:"any"`
			Value string `json:"value"`
		} `json:"country_choices"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"FRA", "GER", "USA"}, got.Countries)
	assert.Equal(t, []int{1896, 2000, 2004}, got.Years)
	assert.Equal(t, 19, got.AgeMin)
	assert.Equal(t, 30, got.AgeMax)
	require.Len(t, got.CountryChoices, 4)
	assert.True(t, got.CountryChoices[0].Any)
}

func TestExportCommand(t *testing.T) {
	data := writeFixture(t)

	t.Run("to file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "filtered_data.csv")
		_, stderr, err := run(t, "export", "--data", data, "--country", "USA", "--out", out)
		require.NoError(t, err)
		assert.Contains(t, stderr, "wrote 2 records")

		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()
		records, err := dataset.Read(f)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Ann", records[0].Name)
		assert.Equal(t, "Ben", records[1].Name)
	})

	t.Run("to stdout", func(t *testing.T) {
		out, _, err := run(t, "export", "--data", data, "--year", "2004", "--sport", "Fencing")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "ID,Name,Sex,Age"))
		assert.Contains(t, lines[1], "Eve")
	})

	t.Run("empty selection writes the header only", func(t *testing.T) {
		out, _, err := run(t, "export", "--data", data, "--country", "ZZZ")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Len(t, lines, 1)
	})

	t.Run("sport values are matched verbatim", func(t *testing.T) {
		out, _, err := run(t, "export", "--data", data, "--sport", "Fencing", "--sport", "Swimming")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5)

		out, _, err = run(t, "export", "--data", data, "--sport", "Fencing,Swimming")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
	})

	t.Run("age bounds", func(t *testing.T) {
		out, _, err := run(t, "export", "--data", data, "--age-min", "20", "--age-max", "25")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[1], "Ann")
		assert.Contains(t, lines[2], "Ben")
	})
}

func TestViewCommand(t *testing.T) {
	data := writeFixture(t)

	t.Run("medal map", func(t *testing.T) {
		out, _, err := run(t, "view", "medal_map", "--data", data)
		require.NoError(t, err)

		var got struct {
			View    string `json:"view"`
			Showing int    `json:"showing"`
			Data    []struct {
				Key   string `json:"key"`
				Count int    `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "medal_map", got.View)
		assert.Equal(t, 4, got.Showing)
		require.Len(t, got.Data, 2)
		assert.Equal(t, "FRA", got.Data[0].Key)
		assert.Equal(t, 2, got.Data[0].Count)
		assert.Equal(t, "USA", got.Data[1].Key)
		assert.Equal(t, 1, got.Data[1].Count)
	})

	t.Run("histogram honours the bucket flag", func(t *testing.T) {
		out, _, err := run(t, "view", "age_histogram", "--data", data, "--buckets", "3")
		require.NoError(t, err)

		var got struct {
			Data []struct {
				Count int `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Len(t, got.Data, 3)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, _, err := run(t, "view", "podium", "--data", data)
		require.ErrorIs(t, err, service.ErrUnknownView)
	})

	t.Run("missing name", func(t *testing.T) {
		_, _, err := run(t, "view", "--data", data)
		require.Error(t, err)
	})
}

func TestSummaryCommand(t *testing.T) {
	out, _, err := run(t, "summary", "--data", writeFixture(t), "--country", "FRA")
	require.NoError(t, err)

	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		idx := strings.LastIndex(line, " ")
		require.Positive(t, idx)
		fields[strings.TrimSpace(line[:idx])] = line[idx+1:]
	}
	assert.Equal(t, "3", fields["Editions"])
	assert.Equal(t, "4", fields["Medals"])
	assert.Equal(t, "5", fields["Athletes"])
	assert.Equal(t, "2", fields["Showing"])
}

func TestProbeCommand(t *testing.T) {
	svc := service.New(service.WithDataPath(writeFixture(t)), service.WithLogger(logger.Nop()))
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out, _, err := run(t, "probe", "--url", srv.URL, "--rounds", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "ok:")
	assert.Contains(t, out, "over 3 rounds")
	assert.Contains(t, out, "(seed 7)")
	assert.NotContains(t, out, "FAIL")
}

func TestProbeCommandFailureNamesSeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, _, err := run(t, "probe", "--url", srv.URL, "--rounds", "1", "--seed", "9")
	require.Error(t, err)
	assert.Contains(t, out, "replay with --seed 9")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
}

func TestRootCommandErrors(t *testing.T) {
	t.Run("missing dataset", func(t *testing.T) {
		_, _, err := run(t, "domains", "--data", filepath.Join(t.TempDir(), "missing.csv"))
		require.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := run(t, "--log-level", "loud", "version")
		require.Error(t, err)
	})

	t.Run("inverted age range", func(t *testing.T) {
		_, _, err := run(t, "export", "--data", writeFixture(t), "--age-min", "30", "--age-max", "20")
		require.Error(t, err)
	})
}
