package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Exchange is one request and the response it got, as handed to an
// InstrumentOutput.
type Exchange struct {
	Method         string
	Url            string
	RequestHeader  http.Header
	RequestBody    string
	Status         int
	Location       string
	ResponseHeader http.Header
	ResponseBody   string
	Duration       time.Duration
}

func newExchange(res *resty.Response) Exchange {
	e := Exchange{
		Method:         res.Request.Method,
		Url:            res.Request.URL,
		RequestHeader:  res.Request.Header,
		Status:         res.StatusCode(),
		ResponseHeader: res.Header(),
		ResponseBody:   res.String(),
		Duration:       res.Time(),
	}
	if res.Request.RawRequest != nil {
		e.Url = res.Request.RawRequest.URL.String()
		e.RequestHeader = res.Request.RawRequest.Header
		e.RequestBody = readRequestBody(res.Request.RawRequest)
	}
	if res.RawResponse != nil {
		location, err := res.RawResponse.Location()
		if err == nil {
			e.Location = location.String()
		}
	}
	return e
}

func readRequestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("<unreadable body: %s>", err.Error())
	}
	defer body.Close()
	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("<unreadable body: %s>", err.Error())
	}
	return string(contents)
}

func writeHeaders(out *strings.Builder, prefix string, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s %s: %s\n", prefix, k, v)
		}
	}
}

// String renders the exchange like `curl -v`: request lines prefixed with
// ">", response lines with "<", then the response body.
func (e Exchange) String() string {
	var out strings.Builder

	fmt.Fprintf(&out, "> %s %s\n", e.Method, e.Url)
	writeHeaders(&out, ">", e.RequestHeader)
	if e.RequestBody != "" {
		out.WriteString(">\n")
		out.WriteString(e.RequestBody)
		out.WriteString("\n")
	}
	out.WriteString("\n")

	fmt.Fprintf(&out, "< %d %s (%s)\n", e.Status, http.StatusText(e.Status), e.Duration.Round(time.Millisecond))
	if e.Location != "" {
		fmt.Fprintf(&out, "< redirected to %s\n", e.Location)
	}
	writeHeaders(&out, "<", e.ResponseHeader)
	out.WriteString("\n")
	out.WriteString(e.ResponseBody)

	return out.String()
}
