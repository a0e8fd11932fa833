package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mlubs/IM-Intel/internal/api/responses"
	"github.com/mlubs/IM-Intel/internal/core/dashboard"
	"github.com/mlubs/IM-Intel/internal/core/pipeline"
	"github.com/mlubs/IM-Intel/internal/core/workbook"
	"github.com/mlubs/IM-Intel/internal/domain"

	"github.com/gin-gonic/gin"
)

// DashboardHandler lida com as requisições do painel de cotações.
type DashboardHandler struct {
	service        dashboard.Service
	maxUploadBytes int64
}

// NewDashboardHandler cria um novo handler do painel. maxUploadBytes <= 0 desativa o limite.
func NewDashboardHandler(service dashboard.Service, maxUploadBytes int64) *DashboardHandler {
	return &DashboardHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

type rangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// HandleUpload recebe a planilha enviada pelo usuário (.xlsx ou .xls).
func (h *DashboardHandler) HandleUpload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			responses.Error(c, http.StatusRequestEntityTooLarge, "Arquivo muito grande", err.Error())
			return
		}
		responses.Error(c, http.StatusBadRequest, "Nenhum arquivo selecionado", err.Error())
		return
	}

	if err := workbook.CheckExtension(fileHeader.Filename); err != nil {
		responses.Error(c, http.StatusBadRequest, "Formato de arquivo inválido. Use .xlsx ou .xls", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao ler arquivo")
		return
	}
	defer file.Close()

	result, err := h.service.LoadWorkbook(file, fileHeader.Filename)
	if err != nil {
		writeServiceError(c, "Erro ao processar arquivo Excel.", err)
		return
	}

	responses.Success(c, result, fmt.Sprintf("Arquivo carregado com sucesso! %d registros.", result.Records))
}

// HandleRows recebe linhas já extraídas da planilha em JSON.
func (h *DashboardHandler) HandleRows(c *gin.Context) {
	var rows []domain.RawRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo da requisição inválido", err.Error())
		return
	}

	result, err := h.service.LoadRows(rows, "api")
	if err != nil {
		writeServiceError(c, "Erro ao processar linhas", err)
		return
	}

	responses.Success(c, result, fmt.Sprintf("Dados carregados com sucesso! %d registros.", result.Records))
}

// HandleReload busca novamente o arquivo database da fonte configurada.
func (h *DashboardHandler) HandleReload(c *gin.Context) {
	result, err := h.service.Reload(c.Request.Context())
	if err != nil {
		writeServiceError(c, "Falha ao carregar arquivo database. Use o upload manual.", err)
		return
	}

	responses.Success(c, result, fmt.Sprintf("Arquivo database carregado com sucesso! %d registros.", result.Records))
}

// HandleRecords devolve a visão atual ou, com start/end na query, um filtro avulso.
func (h *DashboardHandler) HandleRecords(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" && end == "" {
		responses.Success(c, h.service.View(), "")
		return
	}

	view, err := h.service.Filter(start, end)
	if err != nil {
		writeServiceError(c, "Data inválida", err)
		return
	}
	responses.Success(c, view, "")
}

// HandleSetRange define o intervalo ativo do painel.
func (h *DashboardHandler) HandleSetRange(c *gin.Context) {
	var req rangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo da requisição inválido", err.Error())
		return
	}

	view, err := h.service.SetRange(req.Start, req.End)
	if err != nil {
		writeServiceError(c, "Data inválida", err)
		return
	}
	responses.Success(c, view, fmt.Sprintf("%d registros no período", len(view)))
}

// HandleSummary devolve limites do dataset e indicadores do registro mais recente.
func (h *DashboardHandler) HandleSummary(c *gin.Context) {
	summary, err := h.service.Summary()
	if err != nil {
		writeServiceError(c, "Nenhum dado carregado", err)
		return
	}
	responses.Success(c, summary, "")
}

// HandleSeries devolve a série temporal de uma coluna.
func (h *DashboardHandler) HandleSeries(c *gin.Context) {
	points, err := h.service.Series(c.Param("column"))
	if err != nil {
		writeServiceError(c, "Série não encontrada", err)
		return
	}
	responses.Success(c, points, "")
}

// writeServiceError traduz os erros do serviço em status HTTP.
func writeServiceError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, workbook.ErrUnsupportedFormat),
		errors.Is(err, workbook.ErrEmptyWorkbook),
		errors.Is(err, pipeline.ErrInvalidBound):
		status = http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNoValidData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrIngestInProgress):
		status = http.StatusConflict
	case errors.Is(err, workbook.ErrFetchFailed):
		status = http.StatusBadGateway
	case errors.Is(err, dashboard.ErrNoData),
		errors.Is(err, dashboard.ErrUnknownColumn):
		status = http.StatusNotFound
	}
	responses.Error(c, status, message, err.Error())
}
