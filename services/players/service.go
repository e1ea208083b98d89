package players

import (
	"fmt"

	"cineview/models"
)

// Service builds the list of third-party embeds a client can play a title
// from. The resumable embeds get the saved position injected as a start
// offset so playback continues where the viewer left off.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// MoviePlayers returns the embed catalog for a movie. startAt is the saved
// position in whole seconds, 0 means start from the beginning.
func (s *Service) MoviePlayers(id int64, startAt int) []models.PlayerSource {
	offset := ""
	if startAt > 0 {
		offset = fmt.Sprintf("%d", startAt)
	}
	return []models.PlayerSource{
		{
			Title:       "VidKing",
			Source:      fmt.Sprintf("https://www.vidking.net/embed/movie/%d?progress=%s", id, offset),
			Recommended: true,
			Fast:        true,
			Resumable:   true,
		},
		{
			Title:       "VidLink",
			Source:      fmt.Sprintf("https://vidlink.pro/movie/%d?player=jw&primaryColor=006fee&secondaryColor=a2a2a2&iconColor=eefdec&autoplay=false&startAt=%s", id, offset),
			Recommended: true,
			Fast:        true,
			Ads:         true,
			Resumable:   true,
		},
		{
			Title:       "VidLink 2",
			Source:      fmt.Sprintf("https://vidlink.pro/movie/%d?primaryColor=006fee&autoplay=false&startAt=%s", id, offset),
			Recommended: true,
			Fast:        true,
			Ads:         true,
			Resumable:   true,
		},
		{
			Title:  "<Embed>",
			Source: fmt.Sprintf("https://embed.su/embed/movie/%d", id),
			Ads:    true,
		},
		{
			Title:  "SuperEmbed",
			Source: fmt.Sprintf("https://multiembed.mov/directstream.php?video_id=%d&tmdb=1", id),
			Fast:   true,
			Ads:    true,
		},
		{
			Title:  "FilmKu",
			Source: fmt.Sprintf("https://filmku.stream/embed/%d", id),
			Ads:    true,
		},
		{
			Title:  "NontonGo",
			Source: fmt.Sprintf("https://www.nontongo.win/embed/movie/%d", id),
			Ads:    true,
		},
		{
			Title:  "AutoEmbed 1",
			Source: fmt.Sprintf("https://autoembed.co/movie/tmdb/%d", id),
			Fast:   true,
			Ads:    true,
		},
		{
			Title:  "AutoEmbed 2",
			Source: fmt.Sprintf("https://player.autoembed.cc/embed/movie/%d", id),
			Ads:    true,
		},
		{
			Title:  "2Embed",
			Source: fmt.Sprintf("https://www.2embed.cc/embed/%d", id),
			Ads:    true,
		},
		{
			Title:  "VidSrc 1",
			Source: fmt.Sprintf("https://vidsrc.xyz/embed/movie/%d", id),
			Ads:    true,
		},
		{
			Title:  "VidSrc 2",
			Source: fmt.Sprintf("https://vidsrc.to/embed/movie/%d", id),
			Ads:    true,
		},
		{
			Title:  "VidSrc 3",
			Source: fmt.Sprintf("https://vidsrc.icu/embed/movie/%d", id),
			Ads:    true,
		},
		{
			Title:  "VidSrc 4",
			Source: fmt.Sprintf("https://vidsrc.cc/v2/embed/movie/%d?autoPlay=false", id),
			Ads:    true,
		},
		{
			Title:       "VidSrc 5",
			Source:      fmt.Sprintf("https://vidsrc.cc/v3/embed/movie/%d?autoPlay=false", id),
			Recommended: true,
			Fast:        true,
			Ads:         true,
		},
		{
			Title:  "MoviesAPI",
			Source: fmt.Sprintf("https://moviesapi.club/movie/%d", id),
			Ads:    true,
		},
	}
}

// TVPlayers returns the embed catalog for one episode of a show.
func (s *Service) TVPlayers(id int64, season, episode, startAt int) []models.PlayerSource {
	offset := ""
	if startAt > 0 {
		offset = fmt.Sprintf("%d", startAt)
	}
	return []models.PlayerSource{
		{
			Title:     "VidKing",
			Source:    fmt.Sprintf("https://www.vidking.net/embed/tv/%d/%d/%d?progress=%s&color=eefdec", id, season, episode, offset),
			Fast:      true,
			Resumable: true,
		},
		{
			Title:       "VidLink",
			Source:      fmt.Sprintf("https://vidlink.pro/tv/%d/%d/%d?player=jw&primaryColor=f5a524&secondaryColor=a2a2a2&iconColor=eefdec&autoplay=false&startAt=%s", id, season, episode, offset),
			Recommended: true,
			Fast:        true,
			Ads:         true,
			Resumable:   true,
		},
		{
			Title:       "VidLink 2",
			Source:      fmt.Sprintf("https://vidlink.pro/tv/%d/%d/%d?primaryColor=f5a524&autoplay=false&startAt=%s", id, season, episode, offset),
			Recommended: true,
			Fast:        true,
			Ads:         true,
			Resumable:   true,
		},
		{
			Title:  "<Embed>",
			Source: fmt.Sprintf("https://embed.su/embed/tv/%d/%d/%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "SuperEmbed",
			Source: fmt.Sprintf("https://multiembed.mov/directstream.php?video_id=%d&tmdb=1&s=%d&e=%d", id, season, episode),
			Fast:   true,
			Ads:    true,
		},
		{
			Title:  "FilmKu",
			Source: fmt.Sprintf("https://filmku.stream/embed/series?tmdb=%d&sea=%d&epi=%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "NontonGo",
			Source: fmt.Sprintf("https://www.nontongo.win/embed/tv/%d/%d/%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "AutoEmbed 1",
			Source: fmt.Sprintf("https://autoembed.co/tv/tmdb/%d-%d-%d", id, season, episode),
			Fast:   true,
			Ads:    true,
		},
		{
			Title:  "AutoEmbed 2",
			Source: fmt.Sprintf("https://player.autoembed.cc/embed/tv/%d/%d/%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "2Embed",
			Source: fmt.Sprintf("https://www.2embed.cc/embedtv/%d&s=%d&e=%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "VidSrc 1",
			Source: fmt.Sprintf("https://vidsrc.xyz/embed/tv/%d/%d/%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "VidSrc 2",
			Source: fmt.Sprintf("https://vidsrc.to/embed/tv/%d/%d/%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "VidSrc 3",
			Source: fmt.Sprintf("https://vidsrc.icu/embed/tv/%d/%d/%d", id, season, episode),
			Ads:    true,
		},
		{
			Title:  "VidSrc 4",
			Source: fmt.Sprintf("https://vidsrc.cc/v2/embed/tv/%d/%d/%d?autoPlay=false", id, season, episode),
			Ads:    true,
		},
		{
			Title:       "VidSrc 5",
			Source:      fmt.Sprintf("https://vidsrc.cc/v3/embed/tv/%d/%d/%d?autoPlay=false", id, season, episode),
			Recommended: true,
			Fast:        true,
			Ads:         true,
		},
		{
			Title:  "MoviesAPI",
			Source: fmt.Sprintf("https://moviesapi.club/tv/%d-%d-%d", id, season, episode),
			Ads:    true,
		},
	}
}
