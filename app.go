package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"slidecraft/agent"
	"slidecraft/assets"
	"slidecraft/charts"
	"slidecraft/config"
	"slidecraft/database"
	"slidecraft/deckimport"
	"slidecraft/export"
	"slidecraft/logger"
	"slidecraft/outline"
)

// AssetInfo is the JSON view of an image asset handed to the frontend.
type AssetInfo struct {
	ID             string `json:"id"`
	Origin         string `json:"origin"`
	Title          string `json:"title"`
	AssignedSlides []int  `json:"assignedSlides"`
}

// App struct
type App struct {
	ctx           context.Context
	configService *ConfigService
	logger        *logger.Logger
	session       *Session
	coordinator   *export.Coordinator
	history       *database.HistoryService
	storageDir    string
}

// NewApp creates a new App application struct
func NewApp() *App {
	a := &App{
		logger: logger.NewLogger(),
	}
	a.configService = NewConfigService(a.Log)
	return a
}

// startup is called when the app starts. The context is saved so we can
// call the wails runtime methods.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	dir, err := a.configService.GetStorageDir()
	if err != nil {
		fmt.Println("Error resolving storage dir:", err)
		return
	}
	a.storageDir = dir

	if err := a.configService.Initialize(ctx); err != nil {
		fmt.Println("Error initializing config service:", err)
		return
	}
	if err := a.logger.Init(dir); err != nil {
		fmt.Println("Error initializing logger:", err)
	}

	cfg, err := a.configService.GetEffectiveConfig()
	if err != nil {
		a.Log(fmt.Sprintf("Failed to load config: %v", err))
		cfg = config.Config{ExportTimeoutSeconds: config.DefaultExportTimeoutSeconds}
	}

	session, err := NewSession(filepath.Join(dir, "session_images"), a.Log)
	if err != nil {
		a.Log(fmt.Sprintf("Failed to create session: %v", err))
		return
	}
	a.session = session

	a.coordinator = export.NewCoordinator(
		export.NewGoPPTService(),
		export.WithTimeout(time.Duration(cfg.EffectiveExportTimeoutSeconds())*time.Second),
		export.WithLogger(a.Log),
		export.WithProgress(a.emitExportProgress),
	)

	if cfg.KeepHistory {
		history, err := database.NewHistoryService(filepath.Join(dir, "history.db"), a.Log)
		if err != nil {
			// History is best-effort; the app runs fine without it.
			a.Log(fmt.Sprintf("Failed to open export history: %v", err))
		} else {
			a.history = history
		}
	}

	a.configService.OnConfigChanged(func(cfg config.Config) {
		a.coordinator.SetTimeout(time.Duration(cfg.EffectiveExportTimeoutSeconds()) * time.Second)
	})

	a.Log("SlideCraft started")
}

// shutdown is called on app termination
func (a *App) shutdown(ctx context.Context) {
	if a.session != nil {
		a.session.Store.ClearAll(nil)
	}
	if a.history != nil {
		a.history.Close()
	}
	a.logger.Close()
}

// Log writes a message to the application log
func (a *App) Log(message string) {
	a.logger.Log(message)
}

func (a *App) emitExportProgress(stage string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, "export-progress", stage)
}

// --- Configuration ---

// GetConfig returns the stored configuration
func (a *App) GetConfig() (config.Config, error) {
	return a.configService.GetConfig()
}

// SaveConfig persists the configuration
func (a *App) SaveConfig(cfg config.Config) error {
	return a.configService.SaveConfig(cfg)
}

// --- Outline ---

// GenerateOutline turns free-form notes into the session's outline via the
// LLM gateway. When generation fails the app degrades to a locally
// synthesized template outline instead of surfacing an error: the user
// always ends up with an editable deck.
func (a *App) GenerateOutline(notes string) (outline.Outline, error) {
	if strings.TrimSpace(notes) == "" {
		return outline.Outline{}, WrapError("App", "GenerateOutline", fmt.Errorf("notes are empty"))
	}

	cfg, err := a.configService.GetEffectiveConfig()
	if err != nil {
		return outline.Outline{}, WrapError("App", "GenerateOutline", err)
	}

	o, genErr := a.generateOutlineLLM(cfg, notes)
	if genErr != nil {
		a.Log(fmt.Sprintf("[App] outline generation failed, using fallback: %v", genErr))
		o = outline.Synthesize(notes)
	}

	if err := a.session.Outline.Replace(o); err != nil {
		return outline.Outline{}, WrapError("App", "GenerateOutline", err)
	}
	a.Log(fmt.Sprintf("[App] outline ready: %q, %d slides", o.Title, len(o.Slides)))
	return o, nil
}

func (a *App) generateOutlineLLM(cfg config.Config, notes string) (outline.Outline, error) {
	ctx, cancel := context.WithTimeout(a.runtimeCtx(), 2*time.Minute)
	defer cancel()

	svc, err := agent.NewOutlineService(ctx, cfg, a.Log)
	if err != nil {
		return outline.Outline{}, err
	}
	return svc.GenerateOutline(ctx, notes)
}

// ImportDeck opens a file dialog for an existing .pptx and loads its text
// content as the session's outline.
func (a *App) ImportDeck() (outline.Outline, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Open Presentation",
		Filters: []runtime.FileFilter{
			{DisplayName: "PowerPoint Files (*.pptx)", Pattern: "*.pptx"},
		},
	})
	if err != nil {
		return outline.Outline{}, WrapError("App", "ImportDeck", err)
	}
	if path == "" {
		return outline.Outline{}, WrapError("App", "ImportDeck", fmt.Errorf("no file selected"))
	}

	o, err := deckimport.ExtractOutline(path)
	if err != nil {
		return outline.Outline{}, WrapError("App", "ImportDeck", err)
	}
	if err := a.session.Outline.Replace(o); err != nil {
		return outline.Outline{}, WrapError("App", "ImportDeck", err)
	}
	a.Log(fmt.Sprintf("[App] imported deck %q (%d slides)", o.Title, len(o.Slides)))
	return o, nil
}

// GetOutline returns the current outline.
func (a *App) GetOutline() (outline.Outline, error) {
	o, ok := a.session.Outline.Current()
	if !ok {
		return outline.Outline{}, WrapError("App", "GetOutline", fmt.Errorf("no outline loaded"))
	}
	return o, nil
}

// UpdateSlide edits one slide in place.
func (a *App) UpdateSlide(index int, upd outline.SlideUpdate) error {
	if err := a.session.Outline.UpdateSlide(index, upd); err != nil {
		return WrapError("App", "UpdateSlide", err)
	}
	return nil
}

// SlideCount returns the current outline's slide count.
func (a *App) SlideCount() int {
	return a.session.Outline.SlideCount()
}

// --- Images ---

// GenerateChart renders a placeholder chart image and registers it as a
// generated asset. Unlike outline generation, chart failures surface to the
// user: a missing chart is optional, so there is no silent fallback.
func (a *App) GenerateChart(chartType string, title string) (AssetInfo, error) {
	data, err := charts.RenderPlaceholder(charts.ChartType(chartType), title)
	if err != nil {
		return AssetInfo{}, WrapError("App", "GenerateChart", &agent.GenerationError{Stage: "chart", Err: err})
	}

	handle, err := assets.NewFileHandle(a.session.NewImagePath("chart", ".png"), data)
	if err != nil {
		return AssetInfo{}, WrapError("App", "GenerateChart", err)
	}
	asset := a.session.Store.Create(assets.OriginGenerated, title, handle)
	return assetInfo(asset), nil
}

// UploadImage opens a file dialog and registers the chosen image as an
// uploaded asset. The bytes are copied into the session files directory so
// the asset outlives the source file.
func (a *App) UploadImage() (AssetInfo, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Choose Image",
		Filters: []runtime.FileFilter{
			{DisplayName: "Images (*.png;*.jpg;*.jpeg;*.gif)", Pattern: "*.png;*.jpg;*.jpeg;*.gif"},
		},
	})
	if err != nil {
		return AssetInfo{}, WrapError("App", "UploadImage", err)
	}
	if path == "" {
		return AssetInfo{}, WrapError("App", "UploadImage", fmt.Errorf("no file selected"))
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return AssetInfo{}, WrapError("App", "UploadImage", fmt.Errorf("unsupported image type: %s", ext))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AssetInfo{}, WrapError("App", "UploadImage", err)
	}
	handle, err := assets.NewFileHandle(a.session.NewImagePath("upload", ext), data)
	if err != nil {
		return AssetInfo{}, WrapError("App", "UploadImage", err)
	}
	asset := a.session.Store.Create(assets.OriginUploaded, filepath.Base(path), handle)
	return assetInfo(asset), nil
}

// ListImages returns the session's image assets in creation order. origin
// filters by "generated" or "uploaded"; empty returns everything.
func (a *App) ListImages(origin string) []AssetInfo {
	var filter *assets.Origin
	if origin != "" {
		o := assets.Origin(origin)
		filter = &o
	}
	list := a.session.Store.ListAll(filter)
	out := make([]AssetInfo, len(list))
	for i, asset := range list {
		out[i] = assetInfo(asset)
	}
	return out
}

// DeleteImage removes an asset and releases its file. Returns false for an
// unknown id so a delete-then-refresh UI stays idempotent.
func (a *App) DeleteImage(id string) bool {
	return a.session.Store.Delete(id)
}

// AssignImage assigns an image to a slide index.
func (a *App) AssignImage(id string, slideIndex int) bool {
	return a.session.Store.Assign(id, slideIndex)
}

// UnassignImage removes an image's assignment to a slide index.
func (a *App) UnassignImage(id string, slideIndex int) bool {
	return a.session.Store.Unassign(id, slideIndex)
}

// ClearImages deletes all assets of the given origin ("" clears everything)
// and releases their files.
func (a *App) ClearImages(origin string) {
	var filter *assets.Origin
	if origin != "" {
		o := assets.Origin(origin)
		filter = &o
	}
	a.session.Store.ClearAll(filter)
}

// AssignmentSummary maps slide index to assigned-image count for display.
func (a *App) AssignmentSummary() map[int]int {
	return a.session.Projector.Summary()
}

// DanglingAssignments maps asset ids to assigned indices that fall outside
// the current outline.
func (a *App) DanglingAssignments() map[string][]int {
	return a.session.Projector.Dangling()
}

// --- Export ---

// ExportDeck validates the outline, renders the deck, asks the user where
// to save it, and writes the file. Returns the chosen path, or "" when the
// user cancels the save dialog after a successful render.
func (a *App) ExportDeck() (string, error) {
	cfg, err := a.configService.GetEffectiveConfig()
	if err != nil {
		return "", WrapError("App", "ExportDeck", err)
	}
	a.coordinator.SetTimeout(time.Duration(cfg.EffectiveExportTimeoutSeconds()) * time.Second)

	o, _ := a.session.Outline.Current()
	images := a.session.ResolveImages(a.Log)

	data, err := a.coordinator.Export(a.runtimeCtx(), o, images)
	if err != nil {
		return "", WrapError("App", "ExportDeck", err)
	}

	defaultName := sanitizeFilename(o.Title) + ".pptx"
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save Presentation",
		DefaultFilename: defaultName,
		Filters: []runtime.FileFilter{
			{DisplayName: "PowerPoint Files (*.pptx)", Pattern: "*.pptx"},
		},
	})
	if err != nil {
		return "", WrapError("App", "ExportDeck", err)
	}
	if path == "" {
		a.Log("[App] export save cancelled by user")
		return "", nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", WrapError("App", "ExportDeck", WrapOperationErrorf("write deck to %s", err, path))
	}
	a.Log(fmt.Sprintf("[App] exported deck to %s (%d bytes)", path, len(data)))

	if a.history != nil {
		imageCount := 0
		for _, imgs := range images {
			imageCount += len(imgs)
		}
		if _, err := a.history.Record(database.ExportRecord{
			Title:      o.Title,
			SlideCount: len(o.Slides),
			ImageCount: imageCount,
			Path:       path,
		}); err != nil {
			a.Log(fmt.Sprintf("[App] failed to record export history: %v", err))
		}
	}
	return path, nil
}

// CancelExport requests cancellation of the in-flight export. Honored at
// the coordinator's next checkpoint.
func (a *App) CancelExport() {
	a.coordinator.RequestCancel()
}

// ExportState returns the coordinator state for UI polling.
func (a *App) ExportState() string {
	return string(a.coordinator.State())
}

// ExportHistory returns recent successful exports, newest first.
func (a *App) ExportHistory(limit int) ([]database.ExportRecord, error) {
	if a.history == nil {
		return nil, nil
	}
	records, err := a.history.Recent(limit)
	if err != nil {
		return nil, WrapError("App", "ExportHistory", err)
	}
	return records, nil
}

// runtimeCtx returns the wails context, or Background before startup.
func (a *App) runtimeCtx() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

func assetInfo(asset *assets.ImageAsset) AssetInfo {
	return AssetInfo{
		ID:             asset.ID,
		Origin:         string(asset.Origin),
		Title:          asset.Title,
		AssignedSlides: asset.AssignedSlides(),
	}
}

// sanitizeFilename strips characters that upset file dialogs.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "presentation"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "")
	return replacer.Replace(name)
}
