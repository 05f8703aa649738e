package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes problem documents to gin contexts.
type Responder struct {
	// BaseURI prefixes relative problem types when set.
	BaseURI string
}

func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

// DefaultResponder keeps problem types relative.
var DefaultResponder = NewResponder("")

// Respond writes problem and aborts the handler chain.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError writes err as is when it already is a problem and as a 500 otherwise.
// Internal error text is not echoed to clients.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal)
}

func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

func (r *Responder) ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	r.Respond(c, NewValidationProblem(fieldErrors))
}

func (r *Responder) Unauthorized(c *gin.Context, detail string) {
	r.Respond(c, ErrUnauthorized.WithDetail(detail))
}

func (r *Responder) Forbidden(c *gin.Context, detail string) {
	r.Respond(c, ErrForbidden.WithDetail(detail))
}

// Respond uses DefaultResponder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// RespondError uses DefaultResponder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// ErrorMapper converts an application error into a problem when it recognizes it.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder consults mappers in order before the default handling.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI),
		mappers:   mappers,
	}
}

// AddMapper appends mapper to the chain.
func (r *ChainedResponder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// HTTPStatusFromError returns the status of a problem error, 500 for anything else.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
