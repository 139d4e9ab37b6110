/*
The template package renders HTML templates with html/template.

An [Engine] looks templates up in a user fs.FS first, then in the templates
embedded in this package, such as [ErrorTmpl].
An Engine implements resp.TemplateEngine:

	e := template.New(
		template.WithFS(os.DirFS("web")),
		template.WithLayouts("tmpl/base.tmpl"),
		template.WithFns(template.Urls(router)),
	)

	r := resp.NewResponder(resp.WithTemplateEngine(e))
*/
package template
