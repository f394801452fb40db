package parts_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"parts-manager/core/storage"
	storagemocks "parts-manager/core/storage/mocks"
	"parts-manager/feature/parts"
	"parts-manager/feature/parts/importer"
	"parts-manager/feature/parts/models"
	"parts-manager/feature/parts/store"
	storemocks "parts-manager/feature/parts/store/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, s store.Store, client *storagemocks.Client) *fiber.App {
	t.Helper()

	images := storage.NewImages(client, storage.Config{
		Endpoint: "minio:9000",
		Bucket:   "part-images",
	})
	engine := importer.NewEngine(s, importer.Config{}, zap.NewNop())
	svc := parts.NewService(s, images, engine, zap.NewNop())
	h := parts.NewHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

// workbookUpload builds a multipart request body holding an xlsx file.
func workbookUpload(t *testing.T, rows [][]any) (*bytes.Buffer, string) {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()
	sheet := book.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow(sheet, cell, &row))
	}
	workbook, err := book.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", "stock.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())
	return body, form.FormDataContentType()
}

func TestHandleImport(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetByRef", mock.Anything, "A-100").Return(nil, store.ErrNotFound)
	s.On("Insert", mock.Anything, mock.MatchedBy(func(p *models.Part) bool {
		return p.BusinessRef == "A-100" && p.Quantity == 5
	})).Return(nil)

	app := setupApp(t, s, new(storagemocks.Client))

	body, contentType := workbookUpload(t, [][]any{
		{"Reference", "Name", "Quantity"},
		{"A-100", "Bearing", "5"},
	})
	req := httptest.NewRequest("POST", "/parts/import", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result importer.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.Inserted)
	assert.Empty(t, result.Errors)
	s.AssertExpectations(t)
}

func TestHandleImport_MissingFile(t *testing.T) {
	app := setupApp(t, new(storemocks.Store), new(storagemocks.Client))

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.Close())
	req := httptest.NewRequest("POST", "/parts/import", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleImport_UnknownMode(t *testing.T) {
	app := setupApp(t, new(storemocks.Store), new(storagemocks.Client))

	body, contentType := workbookUpload(t, [][]any{{"Reference"}, {"A-100"}})
	req := httptest.NewRequest("POST", "/parts/import?mode=partial", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleImportPreview(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetByRef", mock.Anything, "A-100").Return(&models.Part{ID: 1, BusinessRef: "A-100", Quantity: 2}, nil)

	app := setupApp(t, s, new(storagemocks.Client))

	body, contentType := workbookUpload(t, [][]any{
		{"Reference", "Name", "Quantity"},
		{"A-100", "Bearing", "9"},
	})
	req := httptest.NewRequest("POST", "/parts/import/preview", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var preview importer.Preview
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
	require.Len(t, preview.ToUpdate, 1)
	assert.Equal(t, 2, preview.ToUpdate[0].CurrentQuantity)
	assert.Equal(t, 9, preview.ToUpdate[0].ProposedQuantity)
	s.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleListParts(t *testing.T) {
	s := new(storemocks.Store)
	s.On("ListPaged", mock.Anything, store.Filter{
		Search: "bear",
		Stock:  store.StockOK,
		Page:   2,
		Limit:  24,
	}).Return(&store.Page{
		Rows:  []models.Part{{ID: 1, BusinessRef: "A-100", Name: "Bearing", Quantity: 6}},
		Total: 30,
		Page:  2,
		Limit: 24,
	}, nil)

	app := setupApp(t, s, new(storagemocks.Client))

	req := httptest.NewRequest("GET", "/parts?search=bear&stock=ok&page=2", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var page store.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, int64(30), page.Total)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "A-100", page.Rows[0].BusinessRef)
	s.AssertExpectations(t)
}

func TestHandleListParts_UnknownStock(t *testing.T) {
	app := setupApp(t, new(storemocks.Store), new(storagemocks.Client))

	req := httptest.NewRequest("GET", "/parts?stock=plenty", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleListByMachine(t *testing.T) {
	s := new(storemocks.Store)
	s.On("ListPaged", mock.Anything, store.Filter{
		Category:       "hydraulics",
		MachineModel:   "HX-90",
		MachineVariant: "B",
		Limit:          50,
	}).Return(&store.Page{Rows: []models.Part{}, Page: 1, Limit: 50}, nil)

	app := setupApp(t, s, new(storagemocks.Client))

	req := httptest.NewRequest("GET", "/parts/by-machine?category=hydraulics&machine_model=HX-90&machine_variant=B", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	s.AssertExpectations(t)
}

func TestHandleListByMachine_MissingParams(t *testing.T) {
	app := setupApp(t, new(storemocks.Store), new(storagemocks.Client))

	req := httptest.NewRequest("GET", "/parts/by-machine?category=hydraulics", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleGetPart(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetWithMachines", mock.Anything, uint(3)).
		Return(&models.Part{ID: 3, BusinessRef: "A-100", Name: "Bearing"}, []uint{1, 4}, nil)

	app := setupApp(t, s, new(storagemocks.Client))

	req := httptest.NewRequest("GET", "/parts/3", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var detail parts.PartDetail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "A-100", detail.BusinessRef)
	assert.Equal(t, []uint{1, 4}, detail.MachineIDs)
}

func TestHandleGetPart_NotFound(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetWithMachines", mock.Anything, uint(42)).Return(nil, nil, store.ErrNotFound)

	app := setupApp(t, s, new(storagemocks.Client))

	req := httptest.NewRequest("GET", "/parts/42", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleGetPart_BadID(t *testing.T) {
	s := new(storemocks.Store)
	// "by-machine" is a static route; anything else non-numeric is a bad id.
	app := setupApp(t, s, new(storagemocks.Client))

	req := httptest.NewRequest("GET", "/parts/not-a-number", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleUpdatePart(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetWithMachines", mock.Anything, uint(3)).
		Return(&models.Part{ID: 3, BusinessRef: "A-100", Name: "Bearing"}, []uint{1}, nil)
	s.On("UpdateFields", mock.Anything, uint(3), map[string]any{
		"name":     "Deep Groove Bearing",
		"quantity": 7,
	}).Return(nil)
	s.On("ReplaceCompatibility", mock.Anything, uint(3), []uint{2, 5}).Return(nil)

	app := setupApp(t, s, new(storagemocks.Client))

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("name", "Deep Groove Bearing"))
	require.NoError(t, form.WriteField("quantity", "7"))
	require.NoError(t, form.WriteField("machine_ids", "2"))
	require.NoError(t, form.WriteField("machine_ids", "5"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest("PUT", "/parts/3", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	s.AssertExpectations(t)
}

func TestHandleUpdatePart_UploadsImage(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetWithMachines", mock.Anything, uint(3)).
		Return(&models.Part{ID: 3, BusinessRef: "A-100"}, []uint{}, nil)
	s.On("UpdateFields", mock.Anything, uint(3), mock.MatchedBy(func(fields map[string]any) bool {
		url, ok := fields["image_url"].(string)
		return ok && url != ""
	})).Return(nil)

	client := new(storagemocks.Client)
	client.On("PutObject", mock.Anything, "part-images", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	app := setupApp(t, s, client)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	img, err := form.CreateFormFile("image", "bearing.jpg")
	require.NoError(t, err)
	_, err = io.Copy(img, bytes.NewReader([]byte("jpeg bytes")))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("PUT", "/parts/3", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	client.AssertExpectations(t)
	s.AssertExpectations(t)
}

func TestHandleUpdatePart_BadQuantity(t *testing.T) {
	app := setupApp(t, new(storemocks.Store), new(storagemocks.Client))

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("quantity", "-2"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest("PUT", "/parts/3", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleDeletePart(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetWithMachines", mock.Anything, uint(3)).
		Return(&models.Part{ID: 3, BusinessRef: "A-100"}, []uint{}, nil)
	s.On("DeleteByID", mock.Anything, uint(3)).Return(nil)

	app := setupApp(t, s, new(storagemocks.Client))

	req := httptest.NewRequest("DELETE", "/parts/3", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	s.AssertExpectations(t)
}

func TestHandleDeletePart_NotFound(t *testing.T) {
	s := new(storemocks.Store)
	s.On("GetWithMachines", mock.Anything, uint(42)).Return(nil, nil, store.ErrNotFound)

	app := setupApp(t, s, new(storagemocks.Client))

	req := httptest.NewRequest("DELETE", "/parts/42", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
