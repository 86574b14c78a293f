package services

import (
	"bytes"
	"regexp"
	"text/template"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/markup"
)

// Anchors shared by the page pipeline and the generator.
var (
	rowContainer = markup.Element("row container", "div",
		markup.Attr{Key: "class", Val: "divide-y divide-secondary-dim/30"})

	mountContainer = markup.Element("mount container", "div",
		markup.Attr{Key: "id", Val: domain.MountID})

	bodyClose = markup.EndTag("closing body", "body")

	sectionClose = markup.EndTag("closing main", "main")

	percentDisplay = markup.Literal("progress percent",
		`<span class="absolute text-sm font-bold text-textPrimary">0%</span>`)

	countDisplay = markup.Regexp("progress count",
		regexp.MustCompile(`<p class="text-xs text-textMuted">\d+ of \d+ Problems Solved</p>`))

	inlineCheckbox = markup.Literal("inline checkbox",
		`<input type="checkbox" class="peer sr-only">`)

	userProfile = markup.Literal("user profile",
		`<div class="h-8 w-8 rounded-full border border-secondary`)
)

// Injection markers. Presence means the matching step already ran.
const (
	mountMarker   = `id="` + domain.MountID + `"`
	percentMarker = `id="` + domain.ProgressPercentID + `"`
	countMarker   = `id="` + domain.ProgressCountID + `"`
	creditsMarker = domain.CreditsValueClass
)

// Replacement markup.
const (
	mountBlock = `<!-- TABLE BODY (Generated via JS) -->
            <div id="` + domain.MountID + `" class="divide-y divide-secondary-dim/30">
                <!-- Rows will be injected here by the script below -->
            </div>`

	// canonicalClose is what belongs between the mount container and </main>.
	canonicalClose = "\n        </div>\n\n    "

	percentTagged = `<span class="absolute text-sm font-bold text-textPrimary" id="` + domain.ProgressPercentID + `">0%</span>`

	countTagged = `<p class="text-xs text-textMuted" id="` + domain.ProgressCountID + `">Calculated...</p>`

	creditsPanel = `        <!-- GLOBAL CREDITS PANEL -->
        <div class="hidden md:flex items-center gap-2 px-3 py-1.5 rounded-full border border-secondary/30 bg-white/5 backdrop-blur-sm shadow-sm hover:border-secondary/50 transition-all ml-4">
            <span class="text-xs font-medium text-textMuted uppercase tracking-wider">Credits</span>
            <span class="text-sm font-bold text-secondary ` + domain.CreditsValueClass + `">...</span>
        </div>
            `
)

// checkboxTagged is an inline checkbox carrying its page and ordinal.
const checkboxTagged = `<input type="checkbox" class="peer sr-only ` + domain.CheckboxClass + `" data-lesson="%s" data-index="%d">`

// scriptRef is one activation script line placed before </body>.
const scriptRef = "    <script src=\"%s\"></script>\n"

// renderScriptTmpl rebuilds the rows in the browser from the page's data artifact.
var renderScriptTmpl = template.Must(template.New("render-script").Parse(`    <!-- DATA-DRIVEN CONTENT SCRIPT -->
    <script type="module">
        import { ` + domain.ArtifactExport + ` } from '{{.DataPrefix}}{{.PageID}}.js';

        const tableBody = document.getElementById('` + domain.MountID + `');
        
        lessonData.problems.forEach((problem, index) => {
            let diffColorClass = 'text-diff-easy bg-diff-easy/10 border-diff-easy/20';
            if (problem.difficulty === 'Medium') diffColorClass = 'text-diff-medium bg-diff-medium/10 border-diff-medium/20';
            if (problem.difficulty === 'Hard') diffColorClass = 'text-diff-hard bg-diff-hard/10 border-diff-hard/20';

            const plusBadge = problem.isPlus 
                ? ` + "`" + `<span class="hidden group-hover:inline-block px-1.5 py-0.5 rounded text-[10px] bg-primary/20 text-primary border border-primary/20">Plus</span>` + "`" + ` 
                : '';

            const row = document.createElement('div');
            row.className = 'grid grid-cols-[auto_1fr_auto_auto_auto_auto_auto] gap-4 items-center p-4 hover:bg-white/[0.02] transition-colors group';
            
            row.innerHTML = ` + "`" + `
                <!-- STATUS -->
                <div class="w-8 flex justify-center">
                    <label class="relative cursor-pointer">
                        <input type="checkbox" class="peer sr-only ` + domain.CheckboxClass + `" data-lesson="${lessonData.lessonId}" data-index="${index}">
                        <div class="w-5 h-5 border-2 border-secondary/50 rounded flex items-center justify-center peer-checked:bg-secondary peer-checked:border-secondary transition-all">
                            <svg class="w-3 h-3 text-white opacity-0 peer-checked:opacity-100" fill="none" viewBox="0 0 24 24" stroke="currentColor">
                                <path stroke-linecap="round" stroke-linejoin="round" stroke-width="3" d="M5 13l4 4L19 7"/>
                            </svg>
                        </div>
                    </label>
                </div>

                <!-- TITLE -->
                <div class="pl-2">
                    <a href="${problem.leetcode || '#'}" class="text-sm font-medium text-textPrimary hover:text-primary transition-colors flex items-center gap-2">
                        ${problem.title}
                        ${plusBadge}
                    </a>
                </div>

                <!-- RESOURCES -->
                <div class="w-20 flex justify-center gap-3 hidden md:flex">
                    <button class="text-textMuted hover:text-primary transition-colors" title="Video Solution">
                        <svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M14.752 11.168l-3.197-2.132A1 1 0 0010 9.87v4.263a1 1 0 001.555.832l3.197-2.132a1 1 0 000-1.664z"/><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M21 12a9 9 0 11-18 0 9 9 0 0118 0z"/></svg>
                    </button>
                    <button class="text-textMuted hover:text-secondary transition-colors" title="Article">
                            <svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M9 12h6m-6 4h6m2 5H7a2 2 0 01-2-2V5a2 2 0 012-2h5.586a1 1 0 01.707.293l5.414 5.414a1 1 0 01.293.707V19a2 2 0 01-2 2z"/></svg>
                    </button>
                </div>

                <!-- PRACTICE -->
                <div class="w-16 flex justify-center hidden md:flex">
                    <a href="${problem.leetcode || '#'}" target="_blank" class="text-textMuted hover:text-white pb-1 border-b border-transparent hover:border-white transition-all text-xs">LC</a>
                </div>

                <!-- NOTES -->
                <div class="w-12 flex justify-center hidden md:flex">
                    <button class="w-8 h-8 rounded-full hover:bg-white/10 flex items-center justify-center text-textMuted transition-colors">
                        <svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M12 4v16m8-8H4"/></svg>
                    </button>
                </div>

                <!-- REVISION -->
                <div class="w-16 flex justify-center hidden md:flex">
                    <button class="text-textMuted hover:text-secondary transition-colors" onclick="this.classList.toggle('text-secondary'); this.classList.toggle('fill-current')">
                        <svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M11.049 2.927c.3-.921 1.603-.921 1.902 0l1.519 4.674a1 1 0 00.95.69h4.915c.969 0 1.371 1.24.588 1.81l-3.976 2.888a1 1 0 00-.363 1.118l1.518 4.674c.3.922-.755 1.688-1.538 1.118l-3.976-2.888a1 1 0 00-1.176 0l-3.976 2.888c-.783.57-1.838-.197-1.538-1.118l1.518-4.674a1 1 0 00-.363-1.118l-3.976-2.888c-.784-.57-.38-1.81.588-1.81h4.914a1 1 0 00.951-.69l1.519-4.674z"/></svg>
                    </button>
                </div>

                <!-- DIFFICULTY -->
                <div class="w-20 text-right pr-2">
                    <span class="text-xs font-bold ${diffColorClass} px-2 py-0.5 rounded border">${problem.difficulty}</span>
                </div>
            ` + "`" + `;
            tableBody.appendChild(row);
        });
    </script>
`))

// placeholderRowTmpl renders one skeleton row for generated pages.
var placeholderRowTmpl = template.Must(template.New("placeholder-row").Parse(`
                <div class="grid grid-cols-[auto_1fr_auto_auto_auto_auto_auto] gap-4 items-center p-4 hover:bg-white/[0.02] transition-colors group">
                    <!-- STATUS -->
                    <div class="w-8 flex justify-center">
                        <label class="relative cursor-pointer">
                            <input type="checkbox" class="peer sr-only">
                            <div class="w-5 h-5 border-2 border-secondary/50 rounded flex items-center justify-center peer-checked:bg-secondary peer-checked:border-secondary transition-all">
                                <svg class="w-3 h-3 text-white opacity-0 peer-checked:opacity-100" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="3" d="M5 13l4 4L19 7"/></svg>
                            </div>
                        </label>
                    </div>
                    <!-- PROBLEM -->
                    <div class="pl-2">
                        <a href="#" class="text-sm font-medium text-textPrimary hover:text-primary transition-colors">{{.Title}}</a>
                    </div>
                    <!-- VIDEO -->
                    <div class="w-20 flex justify-center gap-3 hidden md:flex">
                        <button class="text-textMuted hover:text-primary transition-colors" title="Video Solution">
                            <!-- VIDEO LINK PLACEHOLDER -->
                            <svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M14.752 11.168l-3.197-2.132A1 1 0 0010 9.87v4.263a1 1 0 001.555.832l3.197-2.132a1 1 0 000-1.664z"/><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M21 12a9 9 0 11-18 0 9 9 0 0118 0z"/></svg>
                        </button>
                    </div>
                    <!-- PRACTICE -->
                    <div class="w-16 flex justify-center hidden md:flex">
                         <a href="#" class="text-textMuted hover:text-white pb-1 border-b border-transparent hover:border-white transition-all text-xs">LC</a>
                    </div>
                    <!-- NOTE -->
                    <div class="w-12 flex justify-center hidden md:flex">
                        <button class="w-8 h-8 rounded-full hover:bg-white/10 flex items-center justify-center text-textMuted transition-colors">
                            <svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M12 4v16m8-8H4"/></svg>
                        </button>
                    </div>
                    <!-- REVISION -->
                    <div class="w-16 flex justify-center hidden md:flex">
                         <!-- REVISION FLAG -->
                         <button class="text-textMuted hover:text-secondary transition-colors" onclick="this.classList.toggle('text-secondary'); this.classList.toggle('fill-current')">
                             <svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" d="M11.049 2.927c.3-.921 1.603-.921 1.902 0l1.519 4.674a1 1 0 00.95.69h4.915c.969 0 1.371 1.24.588 1.81l-3.976 2.888a1 1 0 00-.363 1.118l1.518 4.674c.3.922-.755 1.688-1.538 1.118l-3.976-2.888a1 1 0 00-1.176 0l-3.976 2.888c-.783.57-1.838-.197-1.538-1.118l1.518-4.674a1 1 0 00-.363-1.118l-3.976-2.888c-.784-.57-.38-1.81.588-1.81h4.914a1 1 0 00.951-.69l1.519-4.674z"/></svg>
                         </button>
                    </div>
                    <!-- DIFF -->
                    <div class="w-20 text-right pr-2">
                        <span class="text-xs font-bold text-{{.Difficulty.ColourClass}} bg-{{.Difficulty.ColourClass}}/10 px-2 py-0.5 rounded border border-{{.Difficulty.ColourClass}}/20">{{.Difficulty}}</span>
                    </div>
                </div>
    `))

// animationStagger adds staggered entrance classes to the four page
// sections. Each entry is applied only while its replacement is absent.
var animationStagger = []struct{ from, to string }{
	{
		`<div class="flex flex-col md:flex-row md:items-start md:justify-between gap-6 mb-8">`,
		`<div class="flex flex-col md:flex-row md:items-start md:justify-between gap-6 mb-8 animate-fade-up">`,
	},
	{
		`<div class="flex flex-col md:flex-row items-center justify-between gap-4 mb-8 sticky top-20 z-40 py-4 -mx-4 px-4 backdrop-blur-md bg-background/80 md:rounded-xl border-y md:border border-secondary-dim/50">`,
		`<div class="flex flex-col md:flex-row items-center justify-between gap-4 mb-8 sticky top-20 z-40 py-4 -mx-4 px-4 backdrop-blur-md bg-background/80 md:rounded-xl border-y md:border border-secondary-dim/50 animate-fade-up" style="animation-delay: 0.1s">`,
	},
	{
		`<div class="glass-panel p-6 rounded-2xl border border-secondary-dim shadow-xl mb-10 flex flex-col md:flex-row items-center justify-between gap-8">`,
		`<div class="glass-panel p-6 rounded-2xl border border-secondary-dim shadow-xl mb-10 flex flex-col md:flex-row items-center justify-between gap-8 animate-fade-up" style="animation-delay: 0.2s">`,
	},
	{
		`<div class="glass-panel rounded-xl overflow-hidden border border-secondary-dim shadow-xl">`,
		`<div class="glass-panel rounded-xl overflow-hidden border border-secondary-dim shadow-xl animate-fade-up" style="animation-delay: 0.3s">`,
	},
}

// execute renders a template into a string.
func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
