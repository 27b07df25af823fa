package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pushgraph/internal/user/handler/mocks"
	"pushgraph/internal/user/models"
	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/rdf"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(target string) (*httptest.ResponseRecorder, map[string]string) {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func (s *HandlerSuite) TestMe() {
	user := &models.User{URI: "http://x/?c=user&id=alice", Name: "alice"}
	s.service.EXPECT().Resolve(gomock.Any(), rdf.IRI("")).Return(user, nil)
	s.service.EXPECT().TypeOf(gomock.Any(), user.URI).Return(rdf.IRI(""), false, nil)

	rec, body := s.do("/users/me")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(map[string]string{"uri": "http://x/?c=user&id=alice", "name": "alice"}, body)
}

func (s *HandlerSuite) TestMeWithoutSession() {
	s.service.EXPECT().Resolve(gomock.Any(), rdf.IRI("")).
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "no session user"))

	rec, body := s.do("/users/me")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("unauthorized", body["error"])
}

func (s *HandlerSuite) TestLookup() {
	s.Run("resolves the given uri with its type", func() {
		user := &models.User{URI: "http://x/u1", Name: "unknown"}
		s.service.EXPECT().Resolve(gomock.Any(), rdf.IRI("http://x/u1")).Return(user, nil)
		s.service.EXPECT().TypeOf(gomock.Any(), user.URI).Return(rdf.FOAFPerson, true, nil)

		rec, body := s.do("/users?uri=http%3A%2F%2Fx%2Fu1")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("unknown", body["name"])
		s.Equal(rdf.FOAFPerson.String(), body["type"])
	})

	s.Run("rejects relative uris", func() {
		rec, body := s.do("/users?uri=not-absolute")
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("bad_request", body["error"])
	})

	s.Run("store failures hide details", func() {
		s.service.EXPECT().Resolve(gomock.Any(), rdf.IRI("http://x/u2")).
			Return(nil, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeStoreFailure, "failed to look up account name"))

		rec, body := s.do("/users?uri=http://x/u2")
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.Equal("store_failure", body["error"])
		s.Empty(body["error_description"])
	})
}

var _ Service = (*mocks.MockService)(nil)
