package http

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/usermanager/internal/analytics"
	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/export"
	"github.com/rafabene/usermanager/internal/handlers/dto"
	"github.com/rafabene/usermanager/internal/services"
)

const (
	// HeaderTotalCount carrega o total de registros após os filtros
	HeaderTotalCount = "X-Total-Count"
	// HeaderTotalPages carrega o total de páginas para o page_size pedido
	HeaderTotalPages = "X-Total-Pages"

	maxPageSize = 100
)

// ExportRecorder contabiliza exportações concluídas
type ExportRecorder interface {
	RecordExport(format string)
}

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	exports     ExportRecorder
	now         func() time.Time
}

// NewUserHandler cria um novo UserHandler. exports pode ser nil.
func NewUserHandler(userService *services.UserService, exports ExportRecorder) *UserHandler {
	return &UserHandler{
		userService: userService,
		exports:     exports,
		now:         time.Now,
	}
}

// Health informa o estado do serviço; o banco é verificado contando os usuários
func (h *UserHandler) Health(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := h.userService.CountUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"env":    env,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    env,
			"users":  total,
		})
	}
}

// CreateUser cria um novo usuário
//
//	@Summary	Cria um usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		dto.CreateUserRequest	true	"Dados do usuário"
//	@Success	201		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+user.ID)
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetUser busca um usuário por ID
//
//	@Summary	Busca um usuário
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários em ordem de criação. Sem parâmetros devolve todos;
// search, role, company, city e date_range filtram; page e page_size paginam.
//
//	@Summary	Lista usuários
//	@Tags		users
//	@Produce	json
//	@Param		search		query		string	false	"Busca em nome, email, empresa e cidade"
//	@Param		role		query		string	false	"Admin, Manager ou User"
//	@Param		company		query		string	false	"Empresa exata"
//	@Param		city		query		string	false	"Cidade exata"
//	@Param		date_range	query		string	false	"today, week, month ou year"
//	@Param		page		query		int		false	"Página (começa em 1)"
//	@Param		page_size	query		int		false	"Itens por página (máx. 100)"
//	@Success	200			{array}		dto.UserResponse
//	@Failure	400			{object}	dto.ErrorResponse
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	visible, ok := h.visible(c, q)
	if !ok {
		return
	}

	items := visible
	totalPages := dashboard.TotalPages(len(visible), q.pageSize)
	if q.page > 0 {
		items = dashboard.Paginate(visible, q.pageSize, q.page).Items
	}

	c.Header(HeaderTotalCount, strconv.Itoa(len(visible)))
	c.Header(HeaderTotalPages, strconv.Itoa(totalPages))
	c.JSON(http.StatusOK, dto.ToUserResponses(items))
}

// UpdateUser aplica os campos enviados ao usuário (PUT e PATCH)
//
//	@Summary	Atualiza um usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"ID do usuário"
//	@Param		user	body		dto.UpdateUserRequest	true	"Campos alterados"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/users/{id} [put]
//	@Router		/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove um usuário
//
//	@Summary	Remove um usuário
//	@Tags		users
//	@Param		id	path	string	true	"ID do usuário"
//	@Success	204
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Facets devolve os valores distintos usados nos filtros
//
//	@Summary	Valores distintos de role, empresa e cidade
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	dashboard.Facets
//	@Router		/users/facets [get]
func (h *UserHandler) Facets(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard.FacetsOf(users))
}

// Analytics devolve os indicadores agregados de todos os usuários
//
//	@Summary	Indicadores de usuários
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	analytics.Report
//	@Router		/users/analytics [get]
func (h *UserHandler) Analytics(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics.Compute(users, h.now()))
}

// Export devolve o conjunto filtrado como anexo CSV ou PDF
//
//	@Summary	Exporta usuários
//	@Tags		users
//	@Produce	text/csv
//	@Produce	application/pdf
//	@Param		format		query	string	true	"csv ou pdf"
//	@Param		search		query	string	false	"Busca em nome, email, empresa e cidade"
//	@Param		role		query	string	false	"Admin, Manager ou User"
//	@Param		company		query	string	false	"Empresa exata"
//	@Param		city		query	string	false	"Cidade exata"
//	@Param		date_range	query	string	false	"today, week, month ou year"
//	@Success	200
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/users/export [get]
func (h *UserHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		dto.Abort(c, dto.ValidationErrorResponseI18n(c, []dto.ValidationError{{
			Field:   "format",
			Message: dto.T(c, "error.invalid_format"),
			Tag:     "oneof",
		}}))
		return
	}

	q, err := parseListQuery(c)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	visible, ok := h.visible(c, q)
	if !ok {
		return
	}

	now := h.now()
	var buf bytes.Buffer
	if err := format.Write(&buf, visible, now); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	if h.exports != nil {
		h.exports.RecordExport(string(format))
	}
	c.Header("Content-Disposition", `attachment; filename="`+format.Filename(now)+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// visible carrega todos os usuários e aplica busca e filtros
func (h *UserHandler) visible(c *gin.Context, q listQuery) ([]*entities.User, bool) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		dto.AbortWithError(c, err)
		return nil, false
	}
	return dashboard.Apply(users, q.search, q.criteria, h.now()), true
}

type listQuery struct {
	search   string
	criteria dashboard.Criteria
	page     int // 0 = sem paginação
	pageSize int
}

func parseListQuery(c *gin.Context) (listQuery, error) {
	q := listQuery{
		search:   c.Query("search"),
		pageSize: dashboard.DefaultPageSize,
	}
	q.criteria.Company = c.Query("company")
	q.criteria.City = c.Query("city")

	var fields []domainerrors.FieldError
	if raw := c.Query("role"); raw != "" {
		role, ok := entities.ParseRole(raw)
		if !ok {
			fields = append(fields, domainerrors.FieldError{Field: "role", Message: dto.T(c, domainerrors.ErrInvalidRole.Error())})
		}
		q.criteria.Role = role
	}

	dr, err := dashboard.ParseDateRange(c.Query("date_range"))
	if err != nil {
		fields = append(fields, domainerrors.FieldError{Field: "date_range", Message: dto.T(c, "error.invalid_date_range")})
	}
	q.criteria.DateRange = dr

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields = append(fields, domainerrors.FieldError{Field: "page", Message: "page must be a positive integer"})
		}
		q.page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPageSize {
			fields = append(fields, domainerrors.FieldError{Field: "page_size", Message: "page_size must be between 1 and 100"})
		}
		q.pageSize = size
	}

	if len(fields) > 0 {
		return listQuery{}, domainerrors.NewValidationError("invalid query parameters", fields...)
	}
	return q, nil
}

// abortBinding distingue corpo ilegível de campos inválidos
func abortBinding(c *gin.Context, err error) {
	_ = c.Error(err)
	if response := dto.ErrorResponseFor(c, err); response.Status == http.StatusBadRequest {
		dto.Abort(c, response)
		return
	}
	dto.Abort(c, dto.BadRequestErrorResponseI18n(c, "error.bad_request.detail"))
}
