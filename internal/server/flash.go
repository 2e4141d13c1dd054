package server

import (
	"net/http"

	"incidentdesk/pkg/types"
)

const flashCookieName = "incidentdesk_flash"

func (s *Service) setFlash(w http.ResponseWriter, flash types.Flash) {
	encoded, err := s.cookie.Encode(flashCookieName, flash)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode flash cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   !s.config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// popFlash reads the flash cookie and clears it.
func (s *Service) popFlash(w http.ResponseWriter, r *http.Request) types.Flash {
	var flash types.Flash

	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return flash
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   !s.config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	if err := s.cookie.Decode(flashCookieName, cookie.Value, &flash); err != nil {
		s.logger.WithError(err).Debug("discarding unreadable flash cookie")
		return types.Flash{}
	}

	return flash
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, to, notice string) {
	s.setFlash(w, types.Flash{Notice: notice})
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, to, msg string) {
	s.setFlash(w, types.Flash{Error: msg})
	http.Redirect(w, r, to, http.StatusSeeOther)
}
