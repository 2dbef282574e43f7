package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userwale/projetskillhub/services/instructor/internal/models"
)

func multipartUpload(t *testing.T, title, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("title", title))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func TestAddContent_StoresFileAndAppendsItem(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	_, owner := signupInstructor(t, e, "owner@example.com")
	courseID := createCourse(t, e, owner, "With Content")

	body, contentType := multipartUpload(t, "Lecture 1", "notes.pdf", "application/pdf", []byte("%PDF-1.4 fake"))

	req := httptest.NewRequest(http.MethodPost, "/api/instructor/course/"+courseID+"/content", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	req.Header.Set(echo.HeaderAuthorization, owner)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var course models.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))

	require.Len(t, course.Content, 1)
	item := course.Content[0]
	assert.Equal(t, "Lecture 1", item.Title)
	// doc_type keeps only the mimetype's first segment.
	assert.Equal(t, "application", item.DocType)
	assert.NotEmpty(t, item.ContentID)
	assert.Contains(t, item.URL, "/uploads/files/")
	assert.False(t, item.Completed)
}

func TestAddContent_RejectsDisallowedMimeType(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	_, owner := signupInstructor(t, e, "owner@example.com")
	courseID := createCourse(t, e, owner, "No Scripts")

	body, contentType := multipartUpload(t, "evil", "run.sh", "application/x-sh", []byte("#!/bin/sh"))

	req := httptest.NewRequest(http.MethodPost, "/api/instructor/course/"+courseID+"/content", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	req.Header.Set(echo.HeaderAuthorization, owner)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddContent_OwnerOnly(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	_, owner := signupInstructor(t, e, "owner@example.com")
	_, intruder := signupInstructor(t, e, "intruder@example.com")
	courseID := createCourse(t, e, owner, "Protected")

	body, contentType := multipartUpload(t, "x", "x.pdf", "application/pdf", []byte("%PDF"))

	req := httptest.NewRequest(http.MethodPost, "/api/instructor/course/"+courseID+"/content", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	req.Header.Set(echo.HeaderAuthorization, intruder)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
