package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

func sampleActivity(id string) domain.FieldActivity {
	start, _ := domain.ParseTimeOfDay("09:00")
	end, _ := domain.ParseTimeOfDay("10:30")
	date, _ := domain.ParseDate("2024-03-04")
	return domain.FieldActivity{
		ActivityID:     id,
		WorkspaceID:    "ws1",
		SupportStaffID: "u1",
		ActivityDate:   date,
		StartTime:      &start,
		EndTime:        &end,
		Title:          "Quarterly maintenance",
		CustomerName:   "Acme",
		LocationType:   domain.LocationOnSite,
		Status:         domain.StatusCompleted,
		CreatedBy:      "u1",
	}
}

// photoBody builds a multipart body with a single "file" part of the given content type.
func (suite *HandlerTestSuite) photoBody(contentType string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="site.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())
	return body, writer.FormDataContentType()
}

func (suite *HandlerTestSuite) TestListActivities_PassesFiltersAndToken() {
	next := "cursor-2"
	matcher := mock.MatchedBy(func(p dto.ListFieldActivitiesParams) bool {
		return p.Limit == 20 && p.Status != nil && *p.Status == "COMPLETED" &&
			p.PageToken != nil && *p.PageToken == "cursor-1"
	})
	suite.activities.On("ListActivities", mock.Anything, "ws1", matcher, "u1").
		Return([]domain.FieldActivity{sampleActivity("a1")}, &next, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/field-activities?limit=20&status=COMPLETED&page_token=cursor-1", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListFieldActivitiesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Activities, 1)
	suite.Equal("a1", body.Activities[0].ID)
	suite.Equal(1.5, body.Activities[0].DurationHours)
	suite.Equal("2024-03-04", body.Activities[0].ActivityDate)
	suite.Require().NotNil(body.NextPageToken)
	suite.Equal("cursor-2", *body.NextPageToken)
	suite.activities.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListActivities_InvalidStatus() {
	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/field-activities?status=DONE", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.activities.AssertNotCalled(suite.T(), "ListActivities", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetActivity_Forbidden() {
	suite.activities.On("GetActivity", mock.Anything, "a1", "u2").
		Return(nil, apperrors.NewForbiddenError("Not enough permissions to view this activity")).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/field-activities/a1", "", "u2")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.JSONEq(`{"error":"Not enough permissions to view this activity"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateActivity_MissingTitle() {
	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/field-activities",
		`{"activity_date":"2024-03-04","customer_name":"Acme"}`, "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid request format")
}

func (suite *HandlerTestSuite) TestCreateActivity_Created() {
	activity := sampleActivity("a9")
	suite.activities.On("CreateActivity", mock.Anything, "ws1",
		mock.MatchedBy(func(r dto.CreateFieldActivityRequest) bool { return r.Title == "Quarterly maintenance" }), "u1").
		Return(&activity, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/field-activities",
		`{"activity_date":"2024-03-04","title":"Quarterly maintenance","customer_name":"Acme","start_time":"09:00","end_time":"10:30"}`, "u1")

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"id":"a9"`)
}

func (suite *HandlerTestSuite) TestDeleteActivity_NoContent() {
	suite.activities.On("DeleteActivity", mock.Anything, "a1", "u1").Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/field-activities/a1", "", "u1")

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestAddPhoto_Created() {
	body, contentType := suite.photoBody("image/jpeg", []byte("jpeg-bytes"))
	photo := &domain.FieldActivityPhoto{
		PhotoID:         "p1",
		FieldActivityID: "a1",
		FilePath:        "/uploads/field_activities/a1/p1.jpg",
		FileName:        "site.jpg",
		FileSize:        10,
		MimeType:        "image/jpeg",
		UploadedBy:      "u1",
		UploadedAt:      time.Now().UTC(),
	}
	suite.activities.On("AddPhoto", mock.Anything, "a1", mock.MatchedBy(func(u domain.Upload) bool {
		return u.FileName == "site.jpg" && u.ContentType == "image/jpeg" && u.Size == 10
	}), "u1").Return(photo, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/field-activities/a1/photos", body, contentType, "u1")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.FieldActivityPhotoResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("p1", resp.ID)
	suite.Equal("image/jpeg", resp.MimeType)
}

func (suite *HandlerTestSuite) TestAddPhoto_MissingFile() {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	suite.Require().NoError(writer.WriteField("caption", "no file here"))
	suite.Require().NoError(writer.Close())

	w := suite.do(http.MethodPost, "/api/v1/field-activities/a1/photos", body, writer.FormDataContentType(), "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"A file must be provided in the 'file' field"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestAddPhoto_TooLarge() {
	body, contentType := suite.photoBody("image/png", []byte("png-bytes"))
	suite.activities.On("AddPhoto", mock.Anything, "a1", mock.Anything, "u1").
		Return(nil, apperrors.NewTooLargeError("File exceeds the maximum upload size")).Once()

	w := suite.do(http.MethodPost, "/api/v1/field-activities/a1/photos", body, contentType, "u1")

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (suite *HandlerTestSuite) TestExportActivities_Workbook() {
	rng, err := dto.ParseDateRange("2024-03-01", "2024-03-31")
	suite.Require().NoError(err)
	activities := []domain.FieldActivity{sampleActivity("a1")}
	suite.activities.On("ListActivitiesInRange", mock.Anything, "ws1", rng, "u1").Return(activities, nil).Once()
	suite.export.On("ActivitiesWorkbook", activities).Return([]byte("PK-xlsx"), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/field-activities/export?date_from=2024-03-01&date_to=2024-03-31", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="field_activities_2024-03-01_2024-03-31.xlsx"`, w.Header().Get("Content-Disposition"))
	suite.Contains(w.Header().Get("Content-Type"), "spreadsheetml")
	suite.Equal("PK-xlsx", w.Body.String())
}

func (suite *HandlerTestSuite) TestExportActivities_InvertedRange() {
	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/field-activities/export?date_from=2024-03-31&date_to=2024-03-01", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"date_to must not be before date_from"}`, w.Body.String())
	suite.activities.AssertNotCalled(suite.T(), "ListActivitiesInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestWorkspaceStats_BadDate() {
	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/field-activities/analytics?date_from=03/01/2024", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"date_from must be a date in YYYY-MM-DD format"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateActivity_MalformedTimes() {
	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/field-activities",
		`{"activity_date":"04/03/2024","title":"Visit","customer_name":"Acme"}`, "u1")
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/field-activities",
		`{"activity_date":"2024-03-04","title":"Visit","customer_name":"Acme","start_time":"9am"}`, "u1")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.activities.AssertNotCalled(suite.T(), "CreateActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
