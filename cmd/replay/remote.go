package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/gymxp/internal/middleware"
	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/workout"
)

const userAgent = "gymxp-replay/1"

type remoteClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newRemoteClient(baseURL, token string) *remoteClient {
	return &remoteClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// do sends body as JSON and decodes a 2xx response into out.
func (c *remoteClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(middleware.TokenHeader, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBytes, out)
}

// replayRemote opens a session, uploads the frames in batches and finishes
// the session. An interrupted replay still finishes the session so the reps
// counted so far are credited.
func replayRemote(ctx context.Context, c *remoteClient, params replayParams, frames []pose.Frame, out io.Writer) error {
	var session workout.Session
	if err := c.do(ctx, http.MethodPost, "/sessions", workout.StartRequest{
		UserID:   params.userID,
		Analyzer: params.analyzer,
	}, &session); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	log.Infof("session [%s] started for [%s]", session.ID, session.UserID)

	framesPath := "/sessions/" + session.ID.String() + "/frames"
	var uploadErr error
	for i := 0; i < len(frames) && ctx.Err() == nil; i += params.batchSize {
		end := min(i+params.batchSize, len(frames))

		var res workout.FramesResult
		if err := c.do(ctx, http.MethodPost, framesPath, workout.FramesRequest{Frames: frames[i:end]}, &res); err != nil {
			uploadErr = fmt.Errorf("upload frames [%d:%d]: %w", i, end, err)
			break
		}
		if len(res.NewReps) > 0 {
			fmt.Fprintf(out, "reps: %d (phase %s)\n", res.Reps, res.Phase)
		}
		log.Debugf("batch [%d:%d] accepted %d, stale %d", i, end, res.Accepted, res.Stale)
	}

	// the replay context may be cancelled already
	finishCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var summary workout.Summary
	if err := c.do(finishCtx, http.MethodPost, "/sessions/"+session.ID.String()+"/finish", nil, &summary); err != nil {
		if uploadErr != nil {
			return fmt.Errorf("%w; finish session: %s", uploadErr, err)
		}
		return fmt.Errorf("finish session: %w", err)
	}

	printSummary(out, summary)
	return uploadErr
}
