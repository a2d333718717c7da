package kodi

import (
	"context"
	"errors"
)

// SearchSongs returns songs whose title contains title.
func (c *Client) SearchSongs(ctx context.Context, title string) (SongPage, error) {
	var result songsResult
	if err := c.call(ctx, "AudioLibrary.GetSongs", c.searchParams(title, "title", "artist", "album"), &result); err != nil {
		return SongPage{}, err
	}
	return SongPage{Total: max(result.Limits.Total, 0), Songs: result.Songs}, nil
}

// SearchMovies returns movies whose title contains title.
func (c *Client) SearchMovies(ctx context.Context, title string) (MoviePage, error) {
	var result moviesResult
	if err := c.call(ctx, "VideoLibrary.GetMovies", c.searchParams(title, "title", "year", "file"), &result); err != nil {
		return MoviePage{}, err
	}
	return MoviePage{Total: max(result.Limits.Total, 0), Movies: result.Movies}, nil
}

// Ping checks connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	var pong string
	if err := c.call(ctx, "JSONRPC.Ping", nil, &pong); err != nil {
		return err
	}
	if pong != "pong" {
		return errors.New("kodi ping: unexpected reply " + pong)
	}
	return nil
}

func (c *Client) searchParams(title string, properties ...string) searchParams {
	return searchParams{
		Filter:     titleFilter{Operator: "contains", Field: "title", Value: title},
		Properties: properties,
		Limits:     limits{Start: 0, End: c.pageSize},
	}
}
