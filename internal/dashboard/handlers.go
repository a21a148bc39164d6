package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/charts"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/loader"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/logging"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/session"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
)

// Messages shown on the page.
const (
	msgLoaded      = "Dados carregados com sucesso!"
	msgUnsupported = "Formato de arquivo não suportado!"
	msgTooLarge    = "Arquivo muito grande."
	msgNoFile      = "Nenhum arquivo enviado."
)

// session returns the caller's session, issuing a cookie for new ones.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	id := ""
	if c, err := r.Cookie(cookieName); err == nil {
		id = c.Value
	}
	sess, created := s.sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// current returns the session's uploaded table, or nil.
func (s *Server) current(d session.Data) *table.Table {
	if d.Upload == nil {
		return nil
	}
	t, ok := s.cache.Get(d.Upload.ID)
	if !ok {
		return nil
	}
	return t
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	flash := sess.TakeFlash()
	d := sess.Snapshot()
	d.Flash = flash
	t := s.current(d)
	if d.Upload != nil && t == nil {
		// evicted from the cache; ask for the file again
		sess.Update(func(d *session.Data) { d.Upload, d.Status = nil, nil })
		d.Upload, d.Status = nil, nil
	}
	v := BuildView(d, t, s.opt)
	sess.Update(func(d *session.Data) { d.RecordSelection(v.Selected) })

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, v); err != nil {
		logging.Errorf("template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	defer http.Redirect(w, r, "/", http.StatusSeeOther)

	r.Body = http.MaxBytesReader(w, r.Body, s.opt.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		msg := fmt.Sprintf("Falha ao ler o envio: %v", err)
		if errors.As(err, &tooLarge) {
			msg = msgTooLarge
		}
		sess.Update(func(d *session.Data) { d.Flash = &session.Flash{Kind: session.FlashError, Text: msg} })
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		sess.Update(func(d *session.Data) { d.Flash = &session.Flash{Kind: session.FlashError, Text: msgNoFile} })
		return
	}
	defer file.Close()
	if !loader.Supported(header.Filename) {
		logging.Warnf("upload %q rejected: unsupported format", header.Filename)
		sess.Update(func(d *session.Data) {
			d.Upload = nil
			d.Widgets = session.Widgets{}
			d.Status = &session.Flash{Kind: session.FlashError, Text: msgUnsupported}
		})
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		sess.Update(func(d *session.Data) {
			d.Flash = &session.Flash{Kind: session.FlashError, Text: fmt.Sprintf("Falha ao ler o arquivo: %v", err)}
		})
		return
	}

	id, t, err := s.cache.Load(header.Filename, data)
	if err != nil {
		text := fmt.Sprintf("Erro ao carregar dados: %v", err)
		if errors.Is(err, loader.ErrUnsupportedFormat) {
			text = msgUnsupported
		}
		logging.Warnf("upload %q rejected: %v", header.Filename, err)
		sess.Update(func(d *session.Data) {
			d.Upload = nil
			d.Widgets = session.Widgets{}
			d.Status = &session.Flash{Kind: session.FlashError, Text: text}
		})
		return
	}
	logging.Infof("upload %q loaded: %d rows, %d columns", header.Filename, t.NumRows(), len(t.Columns))
	sess.Update(func(d *session.Data) {
		d.Upload = &session.Upload{Name: header.Filename, ID: id, Size: int64(len(data)), LoadedAt: time.Now()}
		d.Widgets = session.Widgets{
			Columns:   append([]string(nil), t.Columns...),
			ChartKind: string(charts.Bar),
		}
		d.Status = &session.Flash{Kind: session.FlashSuccess, Text: msgLoaded}
	})
}

func (s *Server) updateHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	defer http.Redirect(w, r, "/", http.StatusSeeOther)
	if err := r.ParseForm(); err != nil {
		sess.Update(func(d *session.Data) {
			d.Flash = &session.Flash{Kind: session.FlashError, Text: "Falha ao ler o formulário."}
		})
		return
	}
	t := s.current(sess.Snapshot())
	sess.Update(func(d *session.Data) {
		if t != nil && r.PostForm.Has("cols_present") {
			d.Widgets.Columns = t.FilterColumns(r.PostForm["cols"])
		}
		if k, err := charts.ParseKind(r.PostFormValue("chart_kind")); err == nil {
			d.Widgets.ChartKind = string(k)
		}
		if r.PostForm.Has("chart_col") {
			d.Widgets.ChartColumn = r.PostFormValue("chart_col")
		}
		if r.PostForm.Has("hist_col") {
			d.Widgets.HistColumn = r.PostFormValue("hist_col")
		}
		if r.PostForm.Has("scatter_x") {
			d.Widgets.ScatterX = r.PostFormValue("scatter_x")
		}
		if r.PostForm.Has("scatter_y") {
			d.Widgets.ScatterY = r.PostFormValue("scatter_y")
		}
		// the checkboxes are only on the page while the chart section is
		if r.PostForm.Has("chart_kind") {
			d.Widgets.ShowHistogram = r.PostFormValue("show_hist") == "on"
			d.Widgets.ShowScatter = r.PostFormValue("show_scatter") == "on"
		}
	})
}

// themeHandler only touches the colors; table and selection are left alone.
func (s *Server) themeHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	defer http.Redirect(w, r, "/", http.StatusSeeOther)
	if err := r.ParseForm(); err != nil {
		return
	}
	sess.Update(func(d *session.Data) {
		d.Theme.Background = NormalizeColor(r.PostFormValue("bg"), s.opt.DefaultTheme.Background)
		d.Theme.Text = NormalizeColor(r.PostFormValue("fg"), s.opt.DefaultTheme.Text)
	})
}

// filtered returns the session's table projected onto the current selection.
func (s *Server) filtered(d session.Data) (*table.Table, error) {
	t := s.current(d)
	if t == nil {
		return nil, errors.New("nenhum arquivo carregado")
	}
	cols := t.FilterColumns(d.Widgets.Columns)
	if len(cols) == 0 {
		return nil, errors.New("nenhuma coluna selecionada")
	}
	return t.Select(cols)
}

func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	view, err := s.filtered(sess.Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	b, err := view.CSV()
	if err != nil {
		logging.Errorf("export csv: %v", err)
		http.Error(w, "Failed to export data", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	_, _ = w.Write(b)
}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	view, err := s.filtered(sess.Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	kind, err := charts.ParseKind(q.Get("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := charts.Request{Kind: kind, Column: q.Get("col"), X: q.Get("x"), Y: q.Get("y")}
	var buf bytes.Buffer
	if err := charts.RenderPNG(&buf, view, req, s.opt.Charts); err != nil {
		switch {
		case errors.Is(err, table.ErrUnknownColumn):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, charts.ErrNoData), errors.Is(err, charts.ErrRange):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			logging.Errorf("chart %s: %v", kind, err)
			http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "healthy",
		"timestamp":     time.Now().Format(time.RFC3339),
		"version":       version,
		"uptime":        time.Since(s.started).Round(time.Second).String(),
		"sessions":      s.sessions.Len(),
		"cached_tables": s.cache.Len(),
	})
}
