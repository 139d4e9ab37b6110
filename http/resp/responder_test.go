package resp_test

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responder/http/resp"
	"github.com/xy-planning-network/responder/logger"
)

type renderCall struct {
	name string
	data map[string]any
}

// stubEngine records each call to Render and returns out and err.
type stubEngine struct {
	calls []renderCall
	out   string
	err   error
}

func (e *stubEngine) Render(name string, data map[string]any) (string, error) {
	e.calls = append(e.calls, renderCall{name, data})
	return e.out, e.err
}

type generateCall struct {
	name   string
	params map[string]string
	ref    resp.ReferenceType
}

// stubUrls records each call to Generate and returns out and err.
type stubUrls struct {
	calls []generateCall
	out   string
	err   error
}

func (g *stubUrls) Generate(name string, params map[string]string, ref resp.ReferenceType) (string, error) {
	g.calls = append(g.calls, generateCall{name, params, ref})
	return g.out, g.err
}

type serializeCall struct {
	data   any
	format string
	opts   map[string]any
}

// stubSerializer records each call to Serialize and returns out and err.
type stubSerializer struct {
	calls []serializeCall
	out   string
	err   error
}

func (s *stubSerializer) Serialize(data any, format string, opts map[string]any) (string, error) {
	s.calls = append(s.calls, serializeCall{data, format, opts})
	return s.out, s.err
}

func newLogger() logger.Logger {
	return logger.New(logger.WithLogger(log.New(io.Discard, "", 0)), logger.WithLevel(logger.LogLevelDebug))
}

func newResponder(opts ...resp.ResponderOptFn) *resp.Responder {
	return resp.NewResponder(append([]resp.ResponderOptFn{resp.WithLogger(newLogger())}, opts...)...)
}

func TestResponderEmpty(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Act
		actual, err := newResponder().Empty()

		// Assert
		require.Nil(t, err)
		require.Equal(t, resp.KindEmpty, actual.Kind())
		require.Equal(t, http.StatusNoContent, actual.Code())
		require.Empty(t, actual.Content())
		require.Empty(t, actual.Header())
		require.Zero(t, actual.ContentLength())
	})

	t.Run("With-Code-Header", func(t *testing.T) {
		// Act
		actual, err := newResponder().Empty(
			resp.Code(http.StatusInternalServerError),
			resp.Header("X-Error-Identifier", "XYZ"),
		)

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusInternalServerError, actual.Code())
		require.Equal(t, "XYZ", actual.Header().Get("X-Error-Identifier"))
	})

	t.Run("Bad-Code", func(t *testing.T) {
		for _, code := range []int{0, 99, 600} {
			actual, err := newResponder().Empty(resp.Code(code))
			require.ErrorIs(t, err, resp.ErrNotValid)
			require.Nil(t, actual)
		}
	})
}

func TestResponderRender(t *testing.T) {
	t.Run("Defaults-Content-Type", func(t *testing.T) {
		// Arrange
		engine := &stubEngine{out: "Not Found!"}
		d := newResponder(resp.WithTemplateEngine(engine))
		data := map[string]any{"message": "Not Found!"}

		// Act
		actual, err := d.Render("error.tmpl", data, resp.Code(http.StatusNotFound))

		// Assert
		require.Nil(t, err)
		require.Equal(t, []renderCall{{"error.tmpl", data}}, engine.calls)
		require.Equal(t, resp.KindHTML, actual.Kind())
		require.Equal(t, http.StatusNotFound, actual.Code())
		require.Equal(t, []byte("Not Found!"), actual.Content())
		require.Equal(t, resp.DefaultHtmlContentType, actual.Header().Get("Content-Type"))
	})

	t.Run("Keeps-Content-Type", func(t *testing.T) {
		// Arrange
		engine := &stubEngine{out: "{}"}
		d := newResponder(resp.WithTemplateEngine(engine))

		// Act
		actual, err := d.Render("data.tmpl", nil, resp.Headers(http.Header{"content-type": {"application/json"}}))

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, actual.Code())
		require.Equal(t, []string{"application/json"}, actual.Header().Values("Content-Type"))
		require.Equal(t, map[string]any{}, engine.calls[0].data)
	})

	t.Run("Engine-Err", func(t *testing.T) {
		// Arrange
		expected := errors.New("template not found")
		d := newResponder(resp.WithTemplateEngine(&stubEngine{err: expected}))

		// Act
		actual, err := d.Render("missing.tmpl", nil)

		// Assert
		require.Equal(t, expected, err)
		require.Nil(t, actual)
	})

	t.Run("No-Engine", func(t *testing.T) {
		_, err := newResponder().Render("error.tmpl", nil)
		require.ErrorIs(t, err, resp.ErrBadConfig)
	})
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name   string
		url    string
		fns    []resp.Fn
		assert func(*testing.T, *resp.Response, error)
	}{
		{
			name: "Defaults",
			url:  "/user/kpicaza",
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, resp.KindRedirect, actual.Kind())
				require.Equal(t, http.StatusFound, actual.Code())
				require.Equal(t, "/user/kpicaza", actual.Header().Get("Location"))
				require.Contains(t, string(actual.Content()), `<a href="/user/kpicaza">/user/kpicaza</a>`)
			},
		},
		{
			name: "Permanent",
			url:  "https://example.com",
			fns:  []resp.Fn{resp.Code(http.StatusMovedPermanently), resp.Header("X-Moved", "yes")},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusMovedPermanently, actual.Code())
				require.Equal(t, "https://example.com", actual.Header().Get("Location"))
				require.Equal(t, "yes", actual.Header().Get("X-Moved"))
			},
		},
		{
			name: "Escapes-Body",
			url:  `/search?q="go"&page=2`,
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, `/search?q="go"&page=2`, actual.Header().Get("Location"))
				require.Contains(t, string(actual.Content()), `/search?q=&#34;go&#34;&amp;page=2`)
			},
		},
		{
			name: "Empty-Url",
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrMissingData)
				require.Nil(t, actual)
			},
		},
		{
			name: "Not-Redirect-Code",
			url:  "/",
			fns:  []resp.Fn{resp.Code(http.StatusOK)},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrNotValid)
				require.Nil(t, actual)
			},
		},
		{
			name: "Created",
			url:  "/invoices/42",
			fns:  []resp.Fn{resp.Code(http.StatusCreated)},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusCreated, actual.Code())
				require.Equal(t, "/invoices/42", actual.Header().Get("Location"))
			},
		},
	}

	for _, code := range []int{
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect,
	} {
		code := code
		tcs = append(tcs, struct {
			name   string
			url    string
			fns    []resp.Fn
			assert func(*testing.T, *resp.Response, error)
		}{
			name: fmt.Sprintf("Code-%d", code),
			url:  "/",
			fns:  []resp.Fn{resp.Code(code)},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, code, actual.Code())
			},
		})
	}

	for _, code := range []int{
		http.StatusMultipleChoices,
		http.StatusNotModified,
		http.StatusUseProxy,
		http.StatusBadRequest,
	} {
		tcs = append(tcs, struct {
			name   string
			url    string
			fns    []resp.Fn
			assert func(*testing.T, *resp.Response, error)
		}{
			name: fmt.Sprintf("Code-%d", code),
			url:  "/",
			fns:  []resp.Fn{resp.Code(code)},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrNotValid)
				require.Nil(t, actual)
			},
		})
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := newResponder().Redirect(tc.url, tc.fns...)
			tc.assert(t, actual, err)
		})
	}
}

func TestResponderRoute(t *testing.T) {
	t.Run("Redirects", func(t *testing.T) {
		// Arrange
		urls := &stubUrls{out: "/user/kpicaza"}
		d := newResponder(resp.WithUrlGenerator(urls))
		params := map[string]string{"username": "kpicaza"}

		// Act
		actual, err := d.Route("user_profile", params)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []generateCall{{"user_profile", params, resp.AbsolutePath}}, urls.calls)

		expected, err := d.Redirect("/user/kpicaza")
		require.Nil(t, err)
		require.Equal(t, expected, actual)
	})

	t.Run("With-Reference", func(t *testing.T) {
		// Arrange
		urls := &stubUrls{out: "https://example.com/user/kpicaza"}
		d := newResponder(resp.WithUrlGenerator(urls))

		// Act
		actual, err := d.Route("user_profile", nil, resp.Reference(resp.AbsoluteURL), resp.Code(http.StatusSeeOther))

		// Assert
		require.Nil(t, err)
		require.Equal(t, resp.AbsoluteURL, urls.calls[0].ref)
		require.Equal(t, map[string]string{}, urls.calls[0].params)
		require.Equal(t, http.StatusSeeOther, actual.Code())
		require.Equal(t, "https://example.com/user/kpicaza", actual.Header().Get("Location"))
	})

	t.Run("Generator-Err", func(t *testing.T) {
		// Arrange
		expected := errors.New("route not found")
		d := newResponder(resp.WithUrlGenerator(&stubUrls{err: expected}))

		// Act
		actual, err := d.Route("nowhere", nil)

		// Assert
		require.Equal(t, expected, err)
		require.Nil(t, actual)
	})

	t.Run("No-Generator", func(t *testing.T) {
		_, err := newResponder().Route("user_profile", nil)
		require.ErrorIs(t, err, resp.ErrBadConfig)
	})
}

func TestResponderResponse(t *testing.T) {
	// Act
	actual, err := newResponder().Response("some content")

	// Assert
	require.Nil(t, err)
	require.Equal(t, resp.KindPlain, actual.Kind())
	require.Equal(t, http.StatusFound, actual.Code())
	require.Equal(t, []byte("some content"), actual.Content())
	require.Empty(t, actual.Header())

	// Act
	actual, err = newResponder().Response("some content", resp.Code(http.StatusOK), resp.Header("Some-Header", "some value"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, actual.Code())
	require.Equal(t, http.Header{"Some-Header": {"some value"}}, actual.Header())
}

func TestResponderJson(t *testing.T) {
	data := map[string]any{"title": "Hello, World!"}

	t.Run("Defaults", func(t *testing.T) {
		// Arrange
		s := &stubSerializer{out: `{"title": "Hello, World!"}`}
		d := newResponder(resp.WithSerializer(s))

		// Act
		actual, err := d.Json(data)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []serializeCall{{
			data,
			"json",
			map[string]any{resp.JsonEncodeOptionsKey: resp.DefaultJsonEncodeOptions},
		}}, s.calls)
		require.Equal(t, resp.KindJSON, actual.Kind())
		require.Equal(t, http.StatusOK, actual.Code())
		require.Equal(t, `{"title": "Hello, World!"}`, string(actual.Content()))
		require.Equal(t, resp.DefaultJsonContentType, actual.Header().Get("Content-Type"))
	})

	t.Run("Merges-Context", func(t *testing.T) {
		// Arrange
		s := &stubSerializer{out: "{}"}
		d := newResponder(resp.WithSerializer(s))

		// Act
		actual, err := d.Json(
			data,
			resp.Code(http.StatusCreated),
			resp.Header("Content-Type", "application/problem+json"),
			resp.SerializerContext(map[string]any{"groups": []string{"public"}}),
			resp.SerializerContext(map[string]any{resp.JsonEncodeOptionsKey: resp.JsonPrettyPrint}),
		)

		// Assert
		require.Nil(t, err)
		require.Equal(t, map[string]any{
			resp.JsonEncodeOptionsKey: resp.JsonPrettyPrint,
			"groups":                  []string{"public"},
		}, s.calls[0].opts)
		require.Equal(t, http.StatusCreated, actual.Code())
		require.Equal(t, "application/problem+json", actual.Header().Get("Content-Type"))
	})

	t.Run("Serializer-Err", func(t *testing.T) {
		// Arrange
		expected := errors.New("cannot serialize")
		d := newResponder(resp.WithSerializer(&stubSerializer{err: expected}))

		// Act
		actual, err := d.Json(make(chan int))

		// Assert
		require.Equal(t, expected, err)
		require.Nil(t, actual)
	})

	t.Run("No-Serializer", func(t *testing.T) {
		_, err := newResponder().Json(data)
		require.ErrorIs(t, err, resp.ErrBadConfig)
	})
}

func TestResponderFile(t *testing.T) {
	mod := time.Date(2022, time.April, 28, 15, 55, 21, 0, time.UTC)
	fsys := fstest.MapFS{
		"docs/2022-04.pdf": &fstest.MapFile{Data: []byte("%PDF-1.7"), ModTime: mod},
		"docs/notes":       &fstest.MapFile{Data: []byte("notes")},
	}

	tcs := []struct {
		name   string
		fp     string
		fns    []resp.Fn
		assert func(*testing.T, *resp.Response, error)
	}{
		{
			name: "OS-Defaults",
			fp:   "responder_test.go",
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, resp.KindFile, actual.Kind())
				require.Equal(t, http.StatusOK, actual.Code())
				require.Equal(t, "attachment; filename=responder_test.go", actual.Header().Get("Content-Disposition"))
				require.Equal(t, "responder_test.go", actual.File().Name())
				require.NotZero(t, actual.ContentLength())
				require.Nil(t, actual.Content())
			},
		},
		{
			name: "OS-Filename",
			fp:   "responder_test.go",
			fns:  []resp.Fn{resp.Filename("invoice.pdf")},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, "attachment; filename=invoice.pdf", actual.Header().Get("Content-Disposition"))
			},
		},
		{
			name: "OS-Filename-Inline",
			fp:   "responder_test.go",
			fns:  []resp.Fn{resp.Filename("invoice.pdf"), resp.Inline()},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, "inline; filename=invoice.pdf", actual.Header().Get("Content-Disposition"))
			},
		},
		{
			name: "FS-Defaults",
			fp:   "docs/2022-04.pdf",
			fns:  []resp.Fn{resp.FS(fsys)},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, http.Header{
					"Content-Disposition": {"attachment; filename=2022-04.pdf"},
					"Content-Length":      {"8"},
					"Content-Type":        {"application/pdf"},
					"Last-Modified":       {"Thu, 28 Apr 2022 15:55:21 GMT"},
				}, actual.Header())
				require.Equal(t, int64(8), actual.File().Size())
				require.Equal(t, mod, actual.File().ModTime())
				require.Equal(t, "docs/2022-04.pdf", actual.File().Path())
			},
		},
		{
			name: "FS-Quoted-Filename",
			fp:   "docs/2022-04.pdf",
			fns:  []resp.Fn{resp.FS(fsys), resp.Filename("April invoice.pdf"), resp.Attachment()},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, `attachment; filename="April invoice.pdf"`, actual.Header().Get("Content-Disposition"))
			},
		},
		{
			name: "FS-Non-ASCII-Filename",
			fp:   "docs/2022-04.pdf",
			fns:  []resp.Fn{resp.FS(fsys), resp.Filename("résumé.pdf")},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(
					t,
					"attachment; filename=r_sum_.pdf; filename*=utf-8''r%C3%A9sum%C3%A9.pdf",
					actual.Header().Get("Content-Disposition"),
				)
			},
		},
		{
			name: "FS-Code-And-Headers",
			fp:   "docs/2022-04.pdf",
			fns: []resp.Fn{
				resp.FS(fsys),
				resp.Code(http.StatusAccepted),
				resp.Headers(http.Header{
					"X-Report":      {"april"},
					"Content-Type":  {"application/x-pdf"},
					"Cache-Control": {"no-store"},
				}),
				resp.Header("Content-Length", "1000"),
			},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusAccepted, actual.Code())
				require.Equal(t, http.Header{
					"Cache-Control":       {"no-store"},
					"Content-Disposition": {"attachment; filename=2022-04.pdf"},
					"Content-Length":      {"8"},
					"Content-Type":        {"application/x-pdf"},
					"Last-Modified":       {"Thu, 28 Apr 2022 15:55:21 GMT"},
					"X-Report":            {"april"},
				}, actual.Header())
			},
		},
		{
			name: "FS-No-Extension",
			fp:   "docs/notes",
			fns:  []resp.Fn{resp.FS(fsys)},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.Nil(t, err)
				require.Equal(t, "application/octet-stream", actual.Header().Get("Content-Type"))
				require.Empty(t, actual.Header().Get("Last-Modified"))
			},
		},
		{
			name: "FS-Dir",
			fp:   "docs",
			fns:  []resp.Fn{resp.FS(fsys)},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrNotExist)
				require.Nil(t, actual)
			},
		},
		{
			name: "Not-Exist",
			fp:   "not-a-file.pdf",
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrNotExist)
				require.ErrorIs(t, err, fs.ErrNotExist)
				require.Nil(t, actual)
			},
		},
		{
			name: "Empty-Path",
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrNotExist)
			},
		},
		{
			name: "Filename-With-Path",
			fp:   "responder_test.go",
			fns:  []resp.Fn{resp.Filename("../etc/passwd")},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrNotValid)
			},
		},
		{
			name: "Bad-Disposition",
			fp:   "responder_test.go",
			fns:  []resp.Fn{resp.ContentDisposition("form-data")},
			assert: func(t *testing.T, actual *resp.Response, err error) {
				require.ErrorIs(t, err, resp.ErrNotValid)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := newResponder().File(tc.fp, tc.fns...)
			tc.assert(t, actual, err)
		})
	}
}

func TestResponderUrl(t *testing.T) {
	// Arrange
	urls := &stubUrls{out: "https://example.com/user/kpicaza"}
	d := newResponder(resp.WithUrlGenerator(urls))
	params := map[string]string{"username": "kpicaza"}

	// Act
	actual, err := d.Url("user_profile", params)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "https://example.com/user/kpicaza", actual)
	require.Equal(t, generateCall{"user_profile", params, resp.AbsoluteURL}, urls.calls[0])

	// Act
	_, err = d.Url("user_profile", params, resp.Reference(resp.NetworkPath))

	// Assert
	require.Nil(t, err)
	require.Equal(t, resp.NetworkPath, urls.calls[1].ref)

	// Act
	_, err = d.Url("user_profile", params, resp.Reference(resp.ReferenceType(99)))

	// Assert
	require.ErrorIs(t, err, resp.ErrNotValid)
	require.Len(t, urls.calls, 2)
}

func TestResponderConcurrent(t *testing.T) {
	d := newResponder()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				if _, err := d.Redirect("/somewhere"); err != nil {
					panic(err)
				}
			}
		}()
	}

	for i := 0; i < 8; i++ {
		<-done
	}
}
