package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestActivityAttributes(t *testing.T) {
	attrs := ActivityAttributes(7, "DAILY_STREAK")
	set := attribute.NewSet(attrs...)
	if v, ok := set.Value(UserIDKey); !ok || v.AsInt64() != 7 {
		t.Fatalf("user.id=%v", v)
	}
	if v, ok := set.Value(ActivityTypeKey); !ok || v.AsString() != "DAILY_STREAK" {
		t.Fatalf("activity.type=%v", v)
	}
}

func TestGinMiddlewareMarksServerErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	// 包级 Tracer 会委托给第一次设置的全局 provider
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.POST("/api/activities", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/activities", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("spans=%d", len(spans))
	}
	if spans[0].Name() != "POST /api/activities" || spans[0].Status().Code != codes.Error {
		t.Fatalf("first span=%s status=%v", spans[0].Name(), spans[0].Status())
	}
	if spans[1].Status().Code == codes.Error {
		t.Fatalf("health span marked as error")
	}
}
