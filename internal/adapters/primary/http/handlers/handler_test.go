package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"permeability-service/internal/adapters/primary/http/dto"
	"permeability-service/internal/adapters/primary/http/view"
	"permeability-service/internal/adapters/secondary/memory"
	"permeability-service/internal/adapters/secondary/reference"
	"permeability-service/internal/adapters/secondary/xgboost"
	"permeability-service/internal/core/domain"
	"permeability-service/internal/core/services"
	"permeability-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router  *gin.Engine
	refPath string
}

func setupRouter(t *testing.T, refRows int, maxUpload int64) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	refPath := filepath.Join(t.TempDir(), "Comparing_csv.csv")
	if refRows >= 0 {
		require.NoError(t, os.WriteFile(refPath, []byte(testutil.ReferenceCSV(refRows)), 0o644))
	}

	model, err := xgboost.ParseArtifact([]byte(testutil.ModelJSON), domain.FeatureSchema)
	require.NoError(t, err)

	repo := memory.NewUploadSessionRepository(0, 0)
	t.Cleanup(repo.Close)

	merger := services.NewMergeService(reference.NewCSVSource(refPath), domain.MergePositional)
	predictionSvc := services.NewPredictionService(model, merger)
	sessionSvc := services.NewSessionService(repo, predictionSvc)

	style, err := view.DefaultPresentation()
	require.NoError(t, err)
	tmpl, err := view.Templates()
	require.NoError(t, err)

	h := New(sessionSvc, predictionSvc, style, maxUpload)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	h.RegisterRoutes(&r.RouterGroup)

	return &fixture{router: r, refPath: refPath}
}

func uploadRequest(t *testing.T, path, fileName, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodePrediction(t *testing.T, w *httptest.ResponseRecorder) dto.PredictionResponse {
	t.Helper()
	var body dto.PredictionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func columnIndex(body dto.PredictionResponse, name string) int {
	for i, c := range body.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func TestPredict_EndToEnd(t *testing.T) {
	f := setupRouter(t, 10, 0)

	w := f.do(uploadRequest(t, "/api/v1/predictions", "well.csv", testutil.WellLogCSV(10)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodePrediction(t, w)
	assert.Equal(t, 10, body.RowCount)
	assert.Len(t, body.Rows, 10)
	assert.Equal(t, "Depth", body.IndexName)
	assert.Equal(t, "positional", body.MergeStrategy)

	actual := columnIndex(body, domain.ActualPermeabilityColumn)
	predicted := columnIndex(body, domain.PredictedPermeabilityColumn)
	require.NotEqual(t, -1, actual)
	require.NotEqual(t, -1, predicted)
	assert.True(t, body.Columns[actual].Numeric)
	assert.True(t, body.Columns[predicted].Numeric)

	for _, row := range body.Rows {
		for j, c := range body.Columns {
			if !c.Numeric {
				continue
			}
			v, ok := row[j].(float64)
			require.True(t, ok, "column %q should be a number", c.Name)
			assert.InDelta(t, math.Round(v*1e4)/1e4, v, 1e-12, "column %q not rounded to 4 decimals", c.Name)
		}
	}

	// Row 0: porosity 7.1 (<7.5) and acoustic 0.1 (<0.35).
	assert.Equal(t, 0.6123, body.Rows[0][predicted])
	assert.Equal(t, 1.1235, body.Rows[0][actual])

	require.Len(t, body.Chart.Data, 2)
	assert.Equal(t, "Actual Permeability", body.Chart.Data[0].Name)
	assert.Equal(t, "blue", body.Chart.Data[0].Line.Color)
	assert.Equal(t, "Predicted Permeability", body.Chart.Data[1].Name)
	assert.Equal(t, "red", body.Chart.Data[1].Line.Color)
}

func TestPredict_Deterministic(t *testing.T) {
	f := setupRouter(t, 4, 0)

	first := decodePrediction(t, f.do(uploadRequest(t, "/api/v1/predictions", "a.csv", testutil.WellLogCSV(4))))
	second := decodePrediction(t, f.do(uploadRequest(t, "/api/v1/predictions", "b.csv", testutil.WellLogCSV(4))))

	assert.Equal(t, first.Rows, second.Rows)
}

func TestPredict_WithoutDepthUsesPositionalIndex(t *testing.T) {
	f := setupRouter(t, 3, 0)

	csv := testutil.WellLogCSV(3)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	for i, l := range lines {
		lines[i] = l[strings.Index(l, ",")+1:]
	}

	w := f.do(uploadRequest(t, "/api/v1/predictions", "nodepth.csv", strings.Join(lines, "\n")+"\n"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodePrediction(t, w)
	assert.Equal(t, "", body.IndexName)
	assert.Equal(t, []interface{}{0.0, 1.0, 2.0}, body.Index)
}

func TestPredict_MissingColumn(t *testing.T) {
	f := setupRouter(t, 2, 0)

	w := f.do(uploadRequest(t, "/api/v1/predictions", "bad.csv", "Depth,Porosity\n1,0.1\n2,0.2\n"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "column not found")
	assert.Contains(t, w.Body.String(), "Grain Density")
}

func TestPredict_ReferenceLengthMismatch(t *testing.T) {
	f := setupRouter(t, 3, 0)

	w := f.do(uploadRequest(t, "/api/v1/predictions", "well.csv", testutil.WellLogCSV(5)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPredict_ReferenceUnavailable(t *testing.T) {
	f := setupRouter(t, -1, 0)

	w := f.do(uploadRequest(t, "/api/v1/predictions", "well.csv", testutil.WellLogCSV(2)))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPredict_MalformedCSV(t *testing.T) {
	f := setupRouter(t, 1, 0)

	w := f.do(uploadRequest(t, "/api/v1/predictions", "bad.csv", "a,b\n1,2,3\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_RejectsNonCSV(t *testing.T) {
	f := setupRouter(t, 1, 0)

	w := f.do(uploadRequest(t, "/api/v1/predictions", "well.xlsx", testutil.WellLogCSV(1)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_MissingFile(t *testing.T) {
	f := setupRouter(t, 1, 0)

	req, _ := http.NewRequest("POST", "/api/v1/predictions", nil)
	w := f.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_TooLarge(t *testing.T) {
	f := setupRouter(t, 50, 256)

	w := f.do(uploadRequest(t, "/api/v1/predictions", "big.csv", testutil.WellLogCSV(50)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestIndex_EmptySession(t *testing.T) {
	f := setupRouter(t, 1, 0)

	req, _ := http.NewRequest("GET", "/", nil)
	w := f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="file"`)
	assert.NotContains(t, w.Body.String(), "Plotly.newPlot")
	assert.Contains(t, w.Header().Get("Set-Cookie"), sessionCookie+"=")
}

func TestUpload_ThenReloadKeepsLastFile(t *testing.T) {
	f := setupRouter(t, 3, 0)

	w := f.do(uploadRequest(t, "/upload", "well.csv", testutil.WellLogCSV(3)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "<th>Predicted Permeability</th>")
	assert.Contains(t, w.Body.String(), "Plotly.newPlot")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req, _ := http.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])
	reload := f.do(req)

	assert.Equal(t, http.StatusOK, reload.Code)
	assert.Contains(t, reload.Body.String(), "<strong>well.csv</strong>")
	assert.Contains(t, reload.Body.String(), "<th>Actual Permeability</th>")
	assert.Empty(t, reload.Header().Get("Set-Cookie"))

	last, _ := http.NewRequest("GET", "/api/v1/session/last", nil)
	last.AddCookie(cookies[0])
	lw := f.do(last)
	assert.Equal(t, http.StatusOK, lw.Code)
	assert.Contains(t, lw.Body.String(), `"file_name":"well.csv"`)
}

func TestUpload_ErrorRenderedInPage(t *testing.T) {
	f := setupRouter(t, 2, 0)

	w := f.do(uploadRequest(t, "/upload", "bad.csv", "Depth,Porosity\n1,0.1\n2,0.2\n"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `class="error"`)
	assert.Contains(t, w.Body.String(), "column not found")
}

func TestIndex_FailedReloadNamesStoredFile(t *testing.T) {
	f := setupRouter(t, 2, 0)

	w := f.do(uploadRequest(t, "/upload", "broken.csv", "Depth,Porosity\n1,0.1\n2,0.2\n"))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req, _ := http.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])
	reload := f.do(req)

	assert.Equal(t, http.StatusUnprocessableEntity, reload.Code)
	assert.Contains(t, reload.Body.String(), "<strong>broken.csv</strong>")
	assert.Contains(t, reload.Body.String(), "column not found")
}

func TestLastUpload_NoSession(t *testing.T) {
	f := setupRouter(t, 1, 0)

	req, _ := http.NewRequest("GET", "/api/v1/session/last", nil)
	w := f.do(req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearSession(t *testing.T) {
	f := setupRouter(t, 2, 0)

	w := f.do(uploadRequest(t, "/upload", "well.csv", testutil.WellLogCSV(2)))
	cookie := w.Result().Cookies()[0]

	del, _ := http.NewRequest("DELETE", "/api/v1/session", nil)
	del.AddCookie(cookie)
	assert.Equal(t, http.StatusOK, f.do(del).Code)

	last, _ := http.NewRequest("GET", "/api/v1/session/last", nil)
	last.AddCookie(cookie)
	assert.Equal(t, http.StatusNotFound, f.do(last).Code)
}
