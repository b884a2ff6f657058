package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"news-api/internal/domain/entity"
	"news-api/internal/handler/http/respond"
	"news-api/internal/observability/logging"
	newsUC "news-api/internal/usecase/news"
)

// NewsServer implements NewsServiceServer on top of the news use cases, sharing storage
// with the REST surface.
type NewsServer struct {
	svc *newsUC.Service
}

var _ NewsServiceServer = (*NewsServer)(nil)

// NewNewsServer creates a NewsServer backed by svc.
func NewNewsServer(svc *newsUC.Service) *NewsServer {
	return &NewsServer{svc: svc}
}

// GetAllNews returns every article sorted by date ascending.
func (s *NewsServer) GetAllNews(ctx context.Context, _ *Empty) (*NewsList, error) {
	list, err := s.svc.List(ctx, newsUC.ListParams{})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	out := &NewsList{News: make([]*News, 0, len(list))}
	for _, n := range list {
		out.News = append(out.News, fromEntity(n))
	}
	return out, nil
}

// GetNews returns one article.
func (s *NewsServer) GetNews(ctx context.Context, in *NewsID) (*News, error) {
	n, err := s.svc.Get(ctx, in.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return fromEntity(n), nil
}

// AddNews validates the message against the strict schema and creates an article.
func (s *NewsServer) AddNews(ctx context.Context, in *News) (*News, error) {
	input, err := entity.ValidateRequired(in.payload())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	n, err := s.svc.Create(ctx, input)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return fromEntity(n), nil
}

// EditNews is a full replace of the article identified by in.ID.
func (s *NewsServer) EditNews(ctx context.Context, in *News) (*News, error) {
	if !entity.IsValidID(in.ID) {
		return nil, toStatus(ctx, newsUC.ErrInvalidNewsID)
	}
	input, err := entity.ValidateRequired(in.payload())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	n, err := s.svc.Replace(ctx, in.ID, input)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return fromEntity(n), nil
}

// DeleteNews removes one article.
func (s *NewsServer) DeleteNews(ctx context.Context, in *NewsID) (*Empty, error) {
	if err := s.svc.Delete(ctx, in.ID); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &Empty{}, nil
}

// toStatus maps use case errors to gRPC status codes. Causes of internal errors are
// logged and never returned.
func toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, newsUC.ErrNewsNotFound):
		return status.Error(codes.NotFound, "News not found")
	case newsUC.IsClientError(err):
		return status.Error(codes.InvalidArgument, clientMessage(err))
	}
	logging.WithRequestID(ctx, logging.FromContext(ctx)).Error("grpc internal error",
		slog.String("error", respond.SanitizeError(err)))
	return status.Error(codes.Internal, "Internal Server Error")
}

func clientMessage(err error) string {
	var verr *entity.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return strings.Join(verr.Messages(), "; ")
	case errors.Is(err, newsUC.ErrInvalidNewsID):
		return "Invalid news ID"
	case errors.Is(err, newsUC.ErrInvalidDate):
		return "Invalid date"
	}
	return err.Error()
}
