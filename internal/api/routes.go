package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"diabetes-outcome-eval/internal/model"
	"diabetes-outcome-eval/internal/predict"
	"diabetes-outcome-eval/internal/store"
)

// Config defines server dependencies.
type Config struct {
	// ModelPath loads artifact parameters from a JSON file when set;
	// empty uses the embedded tables.
	ModelPath string
	// DBPath enables the prediction history store when set.
	DBPath         string
	AllowedOrigins []string
	SilentDB       bool
}

// Server wires HTTP handlers with the shared model adapter and the
// optional history store.
type Server struct {
	adapter        *predict.Adapter
	db             *store.Database
	modelSource    string
	allowedOrigins []string
}

// NewServer constructs the API server. An artifact that fails to load is
// not fatal: the failure is remembered and every prediction request
// reports the model as unavailable.
func NewServer(cfg Config) (*Server, error) {
	var (
		artifact *model.Artifact
		err      error
		source   = "embedded"
	)
	if cfg.ModelPath != "" {
		source = cfg.ModelPath
		artifact, err = model.LoadFile(cfg.ModelPath)
	} else {
		artifact, err = model.Embedded()
	}

	var adapter *predict.Adapter
	if err != nil {
		logrus.WithError(err).WithField("source", source).Error("load model artifact")
		adapter = predict.NewUnavailable(err)
	} else {
		logrus.WithFields(logrus.Fields{
			"source":   source,
			"features": artifact.FeatureCount(),
		}).Info("model artifact loaded")
		adapter = predict.NewAdapter(artifact)
	}

	server := &Server{
		adapter:        adapter,
		modelSource:    source,
		allowedOrigins: cfg.AllowedOrigins,
	}

	if cfg.DBPath != "" {
		db, err := store.Open(cfg.DBPath, cfg.SilentDB)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		server.db = db
		logrus.WithField("db_path", cfg.DBPath).Info("prediction history enabled")
	}

	return server, nil
}

// Close releases the history store, if any.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.SetHTMLTemplate(indexTemplate())

	r.GET("/", s.handleForm)
	r.POST("/", s.handleFormPredict)

	api := r.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/config", s.handleConfig)
		api.POST("/predict", s.handlePredict)
		api.GET("/predictions", s.handlePredictions)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model_loaded": s.adapter.Available()})
}

func (s *Server) handleConfig(c *gin.Context) {
	fields := make([]FieldDTO, 0, len(predict.Fields))
	for _, f := range predict.Fields {
		fields = append(fields, FieldDTO{Name: f.Name, Label: f.Label})
	}
	c.JSON(http.StatusOK, ConfigResponse{
		Fields:         fields,
		FeatureCount:   s.adapter.FeatureCount(),
		ModelSource:    s.modelSource,
		ModelLoaded:    s.adapter.Available(),
		HistoryEnabled: s.db != nil,
	})
}

func (s *Server) handleForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index", formPage{Fields: predict.Fields, Values: map[string]string{}})
}

func (s *Server) handleFormPredict(c *gin.Context) {
	values := map[string]string{}
	for _, f := range predict.Fields {
		values[f.Name] = c.PostForm(f.Name)
	}

	result := s.adapter.Evaluate(func(name string) string { return values[name] })
	page := formPage{Fields: predict.Fields, Values: values}
	if result.OK {
		page.HasPrediction = true
		page.Prediction = result.Prediction
		s.recordPrediction(result)
	} else {
		page.ErrorMessage = result.Message
	}
	c.HTML(http.StatusOK, "index", page)
}

func (s *Server) handlePredict(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result := s.adapter.Evaluate(func(name string) string { return body[name] })
	if !result.OK {
		s.renderError(c, statusForFailure(result.Err), errors.New(result.Message))
		return
	}
	s.recordPrediction(result)
	c.JSON(http.StatusOK, PredictResponse{Prediction: result.Prediction})
}

func (s *Server) handlePredictions(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, PredictionsResponse{Items: []PredictionDTO{}})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := s.db.ListRecent(limit)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]PredictionDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, PredictionFromModel(row))
	}
	c.JSON(http.StatusOK, PredictionsResponse{Items: items})
}

// recordPrediction appends a successful evaluation to the history store.
// Persistence failures are logged, never surfaced to the requester.
func (s *Server) recordPrediction(result predict.Result) {
	if s.db == nil || !result.OK {
		return
	}
	record := store.RecordFromFeatures(result.Features, result.Prediction)
	if err := s.db.SavePrediction(&record); err != nil {
		logrus.WithError(err).Warn("save prediction history")
	}
}

func statusForFailure(err error) int {
	switch {
	case errors.Is(err, predict.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, predict.ErrMissingField),
		errors.Is(err, predict.ErrNotNumeric):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
