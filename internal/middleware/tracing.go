package middleware

import (
	"strings"

	"menuboard/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware starts a server span per request, stores its trace ID in
// Locals("traceID") for the logger and echoes it in X-Trace-ID.
//
// The span is renamed to the matched route pattern once the handler ran, so
// /api/restaurants/casa-pepe/menu is reported as
// "GET /api/restaurants/:restaurantID/menu".
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := observability.Tracer.Start(ctx, c.Method()+" "+strings.Clone(c.Path()),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", strings.Clone(c.OriginalURL())),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		c.Locals("traceID", traceID)
		c.Set("X-Trace-ID", traceID)
		if rid, ok := c.Locals("requestid").(string); ok {
			span.SetAttributes(attribute.String("http.request_id", rid))
		}
		c.SetUserContext(ctx)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
			span.RecordError(err)
		}
		if route := c.Route(); route != nil && route.Path != "" {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "server error")
		}

		span.SetAttributes(restaurantAttrs(c)...)
		return err
	}
}

// restaurantAttrs reports which restaurant a request touched: the public
// route parameter or, on admin routes, the authenticated session.
func restaurantAttrs(c *fiber.Ctx) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if aid, ok := c.Locals("accountID").(string); ok && aid != "" {
		attrs = append(attrs, observability.AttrAccountID.String(aid))
	}
	rid := strings.Clone(c.Params("restaurantID"))
	if rid == "" {
		rid, _ = c.Locals("restaurantID").(string)
	}
	if rid != "" {
		attrs = append(attrs, observability.AttrRestaurantID.String(rid))
	}
	if table := c.Params("table"); table != "" {
		attrs = append(attrs, observability.AttrTable.String(strings.Clone(table)))
	}
	return attrs
}
