package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/3-lines-studio/mimir/internal/compiler"
	"github.com/3-lines-studio/mimir/internal/types"
)

//go:embed service.js
var compilerServiceSource string

// Client talks to the sidecar compiler service: a long-lived bun process that
// hosts the SFC parser, the script/template/style compilers, the type
// stripper, and the ref-sugar rewriter behind a JSON-over-unix-socket API.
type Client struct {
	cmd    *exec.Cmd
	socket string
	client *http.Client
}

func NewClient() (*Client, error) {
	if _, err := exec.LookPath("bun"); err != nil {
		return nil, ErrBunNotFound
	}

	socket := filepath.Join(os.TempDir(), fmt.Sprintf("mimir-%d.sock", os.Getpid()))

	cmd := exec.Command("bun", "run", "--smol", "-")
	cmd.Env = append(os.Environ(), "MIMIR_SOCKET="+socket)
	if IsDev() {
		cmd.Env = append(cmd.Env, "MIMIR_VERBOSE=1")
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = strings.NewReader(compilerServiceSource)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceStart, err)
	}

	if err := waitForSocket(socket, 5*time.Second); err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}

	slog.Debug("compiler service started", "socket", socket, "pid", cmd.Process.Pid)

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socket)
		},
	}

	return &Client{
		cmd:    cmd,
		socket: socket,
		client: &http.Client{Transport: transport},
	}, nil
}

func (c *Client) Stop() error {
	return c.cmd.Process.Kill()
}

// Collaborators exposes the client as the full port bundle the pipeline
// expects.
func (c *Client) Collaborators() compiler.Collaborators {
	return compiler.Collaborators{
		Parser:   c,
		Script:   c,
		Template: c,
		Style:    c,
		Stripper: c,
		Refs:     c,
		Default:  c,
	}
}

func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for compiler service socket at %s", path)
}

type svcError struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

func (e *svcError) toError() error {
	if e.Stack != "" {
		return fmt.Errorf("%s\n%s", e.Message, e.Stack)
	}
	return fmt.Errorf("%s", e.Message)
}

type descriptorPayload struct {
	Script      *blockPayload  `json:"script"`
	ScriptSetup *blockPayload  `json:"scriptSetup"`
	Template    *blockPayload  `json:"template"`
	Styles      []stylePayload `json:"styles"`
}

type blockPayload struct {
	Content string `json:"content"`
	Lang    string `json:"lang"`
	Setup   bool   `json:"setup"`
}

type stylePayload struct {
	Content string `json:"content"`
	Lang    string `json:"lang"`
	Scoped  bool   `json:"scoped"`
	Module  bool   `json:"module"`
}

type parseResponse struct {
	Descriptor descriptorPayload `json:"descriptor"`
	Errors     []string          `json:"errors"`
	Error      *svcError         `json:"error"`
}

func (c *Client) Parse(ctx context.Context, source, filename string, sourceMap bool) (compiler.ParseResult, error) {
	reqBody := map[string]any{
		"source":    source,
		"filename":  filename,
		"sourceMap": sourceMap,
	}

	var result parseResponse
	if err := c.postJSON(ctx, "/parse", reqBody, &result); err != nil {
		return compiler.ParseResult{}, err
	}
	if result.Error != nil {
		return compiler.ParseResult{}, result.Error.toError()
	}

	descr := types.Descriptor{
		Script:      toScriptBlock(result.Descriptor.Script),
		ScriptSetup: toScriptBlock(result.Descriptor.ScriptSetup),
	}
	if t := result.Descriptor.Template; t != nil {
		descr.Template = &types.TemplateBlock{Content: t.Content, Lang: t.Lang}
	}
	for _, s := range result.Descriptor.Styles {
		descr.Styles = append(descr.Styles, types.StyleBlock{
			Content: s.Content,
			Lang:    s.Lang,
			Scoped:  s.Scoped,
			Module:  s.Module,
		})
	}

	return compiler.ParseResult{Descriptor: descr, Errors: result.Errors}, nil
}

func toScriptBlock(b *blockPayload) *types.ScriptBlock {
	if b == nil {
		return nil
	}
	return &types.ScriptBlock{Content: b.Content, Lang: b.Lang, Setup: b.Setup}
}

type scriptResponse struct {
	Code     string            `json:"code"`
	Bindings map[string]string `json:"bindings"`
	Error    *svcError         `json:"error"`
}

func (c *Client) CompileScript(ctx context.Context, req compiler.ScriptRequest) (compiler.ScriptResult, error) {
	reqBody := map[string]any{
		"source":         req.Source,
		"filename":       req.Filename,
		"id":             req.ID,
		"ssr":            req.SSR,
		"inlineTemplate": req.InlineTemplate,
		"ssrCssVars":     req.SSRCssVars,
		"options":        req.CompilerOptions,
	}

	var result scriptResponse
	if err := c.postJSON(ctx, "/compile-script", reqBody, &result); err != nil {
		return compiler.ScriptResult{}, err
	}
	if result.Error != nil {
		return compiler.ScriptResult{}, result.Error.toError()
	}

	return compiler.ScriptResult{
		Code:     result.Code,
		Bindings: types.Bindings(result.Bindings),
	}, nil
}

type templateResponse struct {
	Code   string    `json:"code"`
	Errors []string  `json:"errors"`
	Error  *svcError `json:"error"`
}

func (c *Client) CompileTemplate(ctx context.Context, req compiler.TemplateRequest) (compiler.TemplateResult, error) {
	reqBody := map[string]any{
		"source":   req.Source,
		"filename": req.Filename,
		"id":       req.ID,
		"ssr":      req.SSR,
		"scoped":   req.Scoped,
		"ts":       req.TS,
		"bindings": req.Bindings,
		"options":  req.CompilerOptions,
	}

	var result templateResponse
	if err := c.postJSON(ctx, "/compile-template", reqBody, &result); err != nil {
		return compiler.TemplateResult{}, err
	}
	if result.Error != nil {
		return compiler.TemplateResult{}, result.Error.toError()
	}

	return compiler.TemplateResult{Code: result.Code, Errors: result.Errors}, nil
}

type styleResponse struct {
	Code   string    `json:"code"`
	Errors []string  `json:"errors"`
	Error  *svcError `json:"error"`
}

func (c *Client) CompileStyle(ctx context.Context, req compiler.StyleRequest) (compiler.StyleResult, error) {
	reqBody := map[string]any{
		"source":   req.Source,
		"filename": req.Filename,
		"id":       req.ID,
		"scoped":   req.Scoped,
		"options":  req.CompilerOptions,
	}

	var result styleResponse
	if err := c.postJSON(ctx, "/compile-style", reqBody, &result); err != nil {
		return compiler.StyleResult{}, err
	}
	if result.Error != nil {
		return compiler.StyleResult{}, result.Error.toError()
	}

	return compiler.StyleResult{Code: result.Code, Errors: result.Errors}, nil
}

type codeResponse struct {
	Code  string    `json:"code"`
	Error *svcError `json:"error"`
}

func (c *Client) StripTypes(ctx context.Context, code string) (string, error) {
	var result codeResponse
	if err := c.postJSON(ctx, "/strip-types", map[string]any{"code": code}, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", result.Error.toError()
	}
	return result.Code, nil
}

func (c *Client) RewriteDefault(ctx context.Context, code, identifier string, typed bool) (string, error) {
	reqBody := map[string]any{
		"code":       code,
		"identifier": identifier,
		"ts":         typed,
	}

	var result codeResponse
	if err := c.postJSON(ctx, "/rewrite-default", reqBody, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", result.Error.toError()
	}
	return result.Code, nil
}

type shouldRewriteResponse struct {
	Result bool      `json:"result"`
	Error  *svcError `json:"error"`
}

func (c *Client) ShouldRewriteRefs(ctx context.Context, code string) (bool, error) {
	var result shouldRewriteResponse
	if err := c.postJSON(ctx, "/ref/should-rewrite", map[string]any{"code": code}, &result); err != nil {
		return false, err
	}
	if result.Error != nil {
		return false, result.Error.toError()
	}
	return result.Result, nil
}

func (c *Client) RewriteRefs(ctx context.Context, code, filename string) (string, error) {
	reqBody := map[string]any{
		"code":     code,
		"filename": filename,
	}

	var result codeResponse
	if err := c.postJSON(ctx, "/ref/rewrite", reqBody, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", result.Error.toError()
	}
	return result.Code, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://localhost"+endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(result)
}
