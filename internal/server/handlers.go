package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tsawler/cantine"
	"github.com/tsawler/cantine/catalogue"
	"github.com/tsawler/cantine/icalendar"
	"github.com/tsawler/cantine/internal/logging"
	"github.com/tsawler/cantine/model"
)

type dayReply struct {
	Success bool `json:"success"`
	model.Day
}

type daysReply struct {
	Success bool           `json:"success"`
	Days    catalogue.Days `json:"days"`
}

type weeksReply struct {
	Success bool `json:"success"`
	catalogue.WeeksList
}

type updateReply struct {
	Success bool `json:"success"`
	catalogue.Update
}

// daysView renders a list of days, highlighting today.
type daysView struct {
	days  catalogue.Days
	today model.Date
}

func (v daysView) PlainText(human bool) string { return v.days.PlainText(human) }
func (v daysView) HTML() string                { return v.days.HTML(v.today) }

type weeksView struct {
	weeks catalogue.WeeksList
	today model.Date
}

func (v weeksView) PlainText(bool) string { return v.weeks.PlainText() }
func (v weeksView) HTML() string          { return v.weeks.HTML(v.today) }

type updateView struct {
	catalogue.Update
}

func (v updateView) PlainText(bool) string { return v.Update.PlainText() }

func (s *Server) today() model.Date {
	return s.catalogue.DateAt(s.now())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, reply{
		representable: textFunc(func(bool) string { return "ok" }),
		json: struct {
			Success bool `json:"success"`
			Days    int  `json:"days"`
		}{true, s.catalogue.Len()},
	})
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	weeks := s.catalogue.Weeks()
	respond(w, r, http.StatusOK, reply{
		representable: weeksView{weeks: weeks, today: s.today()},
		json:          weeksReply{Success: true, WeeksList: weeks},
	})
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	year, week, err := catalogue.ParseWeek(chi.URLParam(r, "week"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	days, err := s.catalogue.Week(year, week)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondDays(w, r, days)
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	s.respondDays(w, r, s.catalogue.Days())
}

func (s *Server) respondDays(w http.ResponseWriter, r *http.Request, days catalogue.Days) {
	respond(w, r, http.StatusOK, reply{
		representable: daysView{days: days, today: s.today()},
		json:          daysReply{Success: true, Days: days},
	})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date, err := model.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, r, ErrInvalidDay)
		return
	}
	day, err := s.catalogue.Day(date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondDay(w, r, day)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	day, ok := s.catalogue.Today(s.now())
	if !ok {
		respondError(w, r, ErrNoMealToday)
		return
	}
	respondDay(w, r, day)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	day, ok := s.catalogue.Next(s.now())
	if !ok {
		respondError(w, r, ErrNoNextMeal)
		return
	}
	respondDay(w, r, day)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, r, ErrMissingQuery)
		return
	}
	day, ok := s.catalogue.FindNext(s.now(), query)
	if !ok {
		respondError(w, r, ErrItemNotFound)
		return
	}
	respondDay(w, r, day)
}

func respondDay(w http.ResponseWriter, r *http.Request, day model.Day) {
	respond(w, r, http.StatusOK, reply{
		representable: day,
		json:          dayReply{Success: true, Day: day},
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	sched := s.cfg.Schedule
	body := icalendar.Export(s.catalogue.Days(), icalendar.Options{
		Location:  s.catalogue.Location(),
		StartHour: sched.LunchStart,
		EndHour:   sched.LunchEnd,
		Summary:   sched.EventSummary,
	})

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cantine.ics"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}

// handleUpload reads a menu document, persists its days and adds them to
// the catalogue.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	data, err := readDocument(r)
	if err != nil {
		logger.WarnContext(ctx, "unreadable upload", "error", err)
		respondError(w, r, err)
		return
	}

	ext := cantine.FromBytes(data).
		Context(ctx).
		Clock(s.now).
		Location(s.catalogue.Location()).
		Config(s.cfg.ToLayoutConfig())

	f, _ := ext.DetectedFormat()
	days, warnings, err := ext.Days()
	if s.metrics != nil {
		s.metrics.ObserveDocument(strings.ToLower(f.String()), err)
	}
	if err != nil {
		logger.WarnContext(ctx, "menu rejected", "format", f.String(), "error", err)
		respondError(w, r, err)
		return
	}
	for _, warn := range warnings {
		logger.WarnContext(ctx, "page skipped", "page", warn.Page, "error", warn.Err)
	}

	if s.saver != nil {
		if err := s.saver.Save(ctx, days); err != nil {
			logger.ErrorContext(ctx, "failed to persist menu", "error", err)
			respondError(w, r, err)
			return
		}
	}

	update := s.catalogue.Insert(days)
	if s.metrics != nil {
		s.metrics.SetDays(s.catalogue.Len())
	}
	logger.InfoContext(ctx, "menu imported",
		"format", f.String(),
		"inserted", len(update.Inserted),
		"replaced", len(update.Replaced),
	)

	respond(w, r, http.StatusOK, reply{
		representable: updateView{update},
		json:          updateReply{Success: true, Update: update},
	})
}

// readDocument returns the uploaded file: the "file" field of a multipart
// form, or the raw body.
func readDocument(r *http.Request) ([]byte, error) {
	var src io.Reader = r.Body

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		mr, err := r.MultipartReader()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: no file field", ErrInvalidBody)
			}
			if err != nil {
				return nil, wrapRead(err)
			}
			if part.FormName() == "file" {
				src = part
				break
			}
			part.Close()
		}
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, wrapRead(err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidBody)
	}
	return data, nil
}

// wrapRead keeps size errors distinct from malformed bodies.
func wrapRead(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidBody, err)
}
