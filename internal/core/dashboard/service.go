// Package dashboard guarda o dataset carregado e a visão filtrada servida ao painel.
// Toda ingestão, qualquer que seja a fonte, passa pelo mesmo pipeline.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/mlubs/IM-Intel/internal/core/pipeline"
	"github.com/mlubs/IM-Intel/internal/core/workbook"
	"github.com/mlubs/IM-Intel/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrNoValidData indica que nenhuma linha sobreviveu à normalização.
	ErrNoValidData = errors.New("arquivo vazio ou sem dados válidos")
	// ErrIngestInProgress indica que já existe uma ingestão em andamento.
	ErrIngestInProgress = errors.New("já existe um carregamento em andamento")
	// ErrNoData indica que nenhum dataset foi carregado ainda.
	ErrNoData = errors.New("nenhum dado carregado")
)

// Service define as operações do painel sobre o dataset em memória.
type Service interface {
	LoadWorkbook(file io.Reader, filename string) (domain.LoadResult, error)
	LoadRows(rows []domain.RawRow, source string) (domain.LoadResult, error)
	LoadSample() (domain.LoadResult, error)
	Reload(ctx context.Context) (domain.LoadResult, error)
	View() domain.Dataset
	Filter(start, end string) (domain.Dataset, error)
	SetRange(start, end string) (domain.Dataset, error)
	Summary() (domain.Summary, error)
	Series(column string) ([]domain.SeriesPoint, error)
}

// Config reúne as dependências do serviço.
type Config struct {
	DateColumn   string
	Source       string
	FetchTimeout time.Duration
	Fetcher      *workbook.Fetcher
	Logger       *zap.Logger
}

// state é substituído por inteiro a cada ingestão bem-sucedida.
type state struct {
	dataset  domain.Dataset
	columns  []string
	rng      *domain.DateRange
	view     domain.Dataset
	source   string
	loadedAt time.Time
}

type service struct {
	normalizer pipeline.Normalizer
	fetcher    *workbook.Fetcher
	source     string
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time

	ingest *semaphore.Weighted

	mu sync.RWMutex
	st state
}

// NewService cria o serviço do painel com o dataset vazio.
func NewService(cfg Config) Service {
	return newService(cfg)
}

func newService(cfg Config) *service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = workbook.NewFetcher(nil)
	}
	return &service{
		normalizer: pipeline.NewNormalizer(cfg.DateColumn),
		fetcher:    fetcher,
		source:     cfg.Source,
		timeout:    cfg.FetchTimeout,
		logger:     logger,
		now:        time.Now,
		ingest:     semaphore.NewWeighted(1),
	}
}

// ---------------------- ingestão ----------------------

// LoadWorkbook lê a primeira planilha do arquivo enviado e substitui o dataset.
func (s *service) LoadWorkbook(file io.Reader, filename string) (domain.LoadResult, error) {
	if err := workbook.CheckExtension(filename); err != nil {
		return domain.LoadResult{}, err
	}
	if !s.ingest.TryAcquire(1) {
		return domain.LoadResult{}, ErrIngestInProgress
	}
	defer s.ingest.Release(1)

	sheet, err := workbook.Read(file)
	if err != nil {
		s.logger.Warn("falha ao ler planilha", zap.String("source", filename), zap.Error(err))
		return domain.LoadResult{}, err
	}
	return s.commit(filename, sheet.Rows, sheet.Headers)
}

// LoadRows substitui o dataset a partir de linhas já extraídas por outro leitor.
func (s *service) LoadRows(rows []domain.RawRow, source string) (domain.LoadResult, error) {
	if !s.ingest.TryAcquire(1) {
		return domain.LoadResult{}, ErrIngestInProgress
	}
	defer s.ingest.Release(1)

	return s.commit(source, rows, nil)
}

// LoadSample carrega os dados de exemplo embutidos.
func (s *service) LoadSample() (domain.LoadResult, error) {
	if !s.ingest.TryAcquire(1) {
		return domain.LoadResult{}, ErrIngestInProgress
	}
	defer s.ingest.Release(1)

	return s.commit("sample", sampleRows(s.normalizer.DateColumn), sampleHeaders)
}

// Reload busca novamente o arquivo da fonte configurada. Em caso de falha o
// dataset atual é mantido.
func (s *service) Reload(ctx context.Context) (domain.LoadResult, error) {
	if !s.ingest.TryAcquire(1) {
		return domain.LoadResult{}, ErrIngestInProgress
	}
	defer s.ingest.Release(1)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	body, err := s.fetcher.Fetch(ctx, s.source)
	if err != nil {
		s.logger.Warn("falha ao carregar arquivo database", zap.String("source", s.source), zap.Error(err))
		return domain.LoadResult{}, err
	}
	defer body.Close()

	sheet, err := workbook.Read(body)
	if err != nil {
		s.logger.Warn("falha ao ler arquivo database", zap.String("source", s.source), zap.Error(err))
		return domain.LoadResult{}, err
	}
	return s.commit(s.source, sheet.Rows, sheet.Headers)
}

// commit roda o pipeline e troca o estado inteiro. Deve ser chamado com s.ingest adquirido.
func (s *service) commit(source string, rows []domain.RawRow, headers []string) (domain.LoadResult, error) {
	if len(rows) == 0 {
		return domain.LoadResult{}, ErrNoValidData
	}

	dataset := s.normalizer.Ingest(rows)
	if len(dataset) == 0 {
		s.logger.Warn("nenhum registro válido", zap.String("source", source), zap.Int("rows", len(rows)))
		return domain.LoadResult{}, ErrNoValidData
	}

	next := state{
		dataset:  dataset,
		columns:  s.columnsFor(dataset, headers),
		view:     pipeline.FilterByRange(dataset, nil),
		source:   source,
		loadedAt: s.now(),
	}

	s.mu.Lock()
	s.st = next
	s.mu.Unlock()

	first, last, _ := dataset.Bounds()
	result := domain.LoadResult{
		Source:  source,
		Rows:    len(rows),
		Records: len(dataset),
		Dropped: len(rows) - len(dataset),
		MinDate: pipeline.FormatBound(first),
		MaxDate: pipeline.FormatBound(last),
	}
	s.logger.Info("dataset carregado",
		zap.String("source", source),
		zap.Int("rows", result.Rows),
		zap.Int("records", result.Records),
		zap.Int("dropped", result.Dropped),
	)
	return result, nil
}

// columnsFor usa a ordem do cabeçalho quando disponível; caso contrário a união
// das colunas dos registros em ordem alfabética.
func (s *service) columnsFor(dataset domain.Dataset, headers []string) []string {
	dateKey := s.normalizer.DateColumn
	present := make(map[string]bool)
	for _, rec := range dataset {
		for col := range rec.Values {
			present[col] = true
		}
	}

	var cols []string
	for _, h := range headers {
		if h != dateKey && present[h] {
			cols = append(cols, h)
			delete(present, h)
		}
	}
	rest := make([]string, 0, len(present))
	for col := range present {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

// ---------------------- filtros e leitura ----------------------

// View devolve a visão filtrada atual.
func (s *service) View() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pipeline.FilterByRange(s.st.view, nil)
}

// Filter aplica um intervalo avulso sem alterar o intervalo ativo.
func (s *service) Filter(start, end string) (domain.Dataset, error) {
	rng, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pipeline.FilterByRange(s.st.dataset, rng), nil
}

// SetRange define o intervalo ativo e recalcula a visão. Um limite inválido não
// altera nada.
func (s *service) SetRange(start, end string) (domain.Dataset, error) {
	rng, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.rng = rng
	s.st.view = pipeline.FilterByRange(s.st.dataset, rng)
	return pipeline.FilterByRange(s.st.view, nil), nil
}

// parseRange valida os limites informados; strings vazias deixam o limite ausente.
func parseRange(start, end string) (*domain.DateRange, error) {
	var rng domain.DateRange
	var err error
	if start != "" {
		if rng.Start, err = pipeline.ParseBound(start); err != nil {
			return nil, fmt.Errorf("data inicial: %w", err)
		}
	}
	if end != "" {
		if rng.End, err = pipeline.ParseBound(end); err != nil {
			return nil, fmt.Errorf("data final: %w", err)
		}
	}
	if rng.Start.IsZero() && rng.End.IsZero() {
		return nil, nil
	}
	return &rng, nil
}

// Summary monta os indicadores do registro mais recente da visão e os limites
// do dataset completo.
func (s *service) Summary() (domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	first, last, ok := s.st.dataset.Bounds()
	if !ok {
		return domain.Summary{}, ErrNoData
	}

	summary := domain.Summary{
		Records:     len(s.st.dataset),
		Columns:     append([]string(nil), s.st.columns...),
		MinDate:     pipeline.FormatBound(first),
		MaxDate:     pipeline.FormatBound(last),
		ViewRecords: len(s.st.view),
		KPIs:        []domain.KPI{},
		Source:      s.st.source,
		LoadedAt:    s.st.loadedAt,
	}
	if s.st.rng != nil {
		if !s.st.rng.Start.IsZero() {
			summary.RangeStart = pipeline.FormatBound(s.st.rng.Start)
		}
		if !s.st.rng.End.IsZero() {
			summary.RangeEnd = pipeline.FormatBound(s.st.rng.End)
		}
	}

	latest, ok := s.st.view.Latest()
	if !ok {
		return summary, nil
	}
	summary.LatestDate = pipeline.FormatBound(latest.Date)
	for _, col := range s.st.columns {
		v, present := latest.Values[col]
		if !present {
			continue
		}
		summary.KPIs = append(summary.KPIs, domain.KPI{
			Column:    col,
			Value:     v,
			Formatted: pipeline.FormatLocaleFixed(v, 2),
		})
	}
	return summary, nil
}

// Series devolve a série temporal de uma coluna na visão ativa.
func (s *service) Series(column string) ([]domain.SeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.st.dataset) == 0 {
		return nil, ErrNoData
	}
	col, err := resolveColumn(column, s.st.columns)
	if err != nil {
		return nil, err
	}

	points := make([]domain.SeriesPoint, 0, len(s.st.view))
	for _, rec := range s.st.view {
		v, ok := rec.Values[col]
		if !ok {
			continue
		}
		points = append(points, domain.SeriesPoint{
			Date:  rec.Date.Format(domain.ISODateLayout),
			Value: v,
		})
	}
	return points, nil
}
