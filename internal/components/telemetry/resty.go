package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
	report_resty_inflight = "resty.in-flight"
)

type restyReporter struct {
	tel      API
	lastId   atomic.Uint64
	inflight atomic.Int64
}

type restyRequestKey struct{}

type restyRequest struct {
	id    uint64
	start time.Time
}

// InstrumentResty reports every request the client sends and how it ended.
// Responses with an error status are warnings, requests that got no
// response at all are broken.
func InstrumentResty(client *resty.Client, tel API) {
	r := &restyReporter{tel: tel}
	client.OnBeforeRequest(r.sent)
	client.OnAfterResponse(r.received)
	client.OnError(r.failed)
}

func (r *restyReporter) sent(_ *resty.Client, req *resty.Request) error {
	rr := restyRequest{
		id:    r.lastId.Add(1),
		start: time.Now(),
	}
	req.SetContext(context.WithValue(req.Context(), restyRequestKey{}, rr))

	r.tel.ReportDebug(report_resty_request, rr.id, req.Method, req.URL)
	r.tel.ReportCount(report_resty_inflight, r.inflight.Add(1))
	return nil
}

func (r *restyReporter) finish(req *resty.Request) (restyRequest, time.Duration) {
	rr, ok := req.Context().Value(restyRequestKey{}).(restyRequest)
	if !ok {
		return restyRequest{}, 0
	}
	r.tel.ReportCount(report_resty_inflight, r.inflight.Add(-1))
	return rr, time.Since(rr.start)
}

func (r *restyReporter) received(_ *resty.Client, res *resty.Response) error {
	rr, duration := r.finish(res.Request)
	if res.IsError() {
		r.tel.ReportWarning(report_resty_response, rr.id, res.Request.URL, res.Status(), duration)
		return nil
	}
	r.tel.ReportDebug(report_resty_response, rr.id, res.Status(), duration)
	return nil
}

func (r *restyReporter) failed(req *resty.Request, err error) {
	rr, duration := r.finish(req)
	r.tel.ReportBroken(report_resty_response, err, rr.id, req.Method, req.URL, duration)
}
