package app

const pageMarkdown = `# sancho

A sheet anchored to one edge of the terminal. Drag it with the mouse, flick
it shut, or click the dimmed page behind it.

## Closing the sheet

- Drag the sheet toward its edge past half of its size and let go.
- Flick it toward its edge; a quick flick closes it from any distance.
- Click the dimmed page outside the sheet. A press that moves before the
  release is a drag, not a click.
- Press esc.

Dragging away from the edge stretches the sheet a little and springs back.

## Scrolling

While the sheet is open the page underneath is locked. Close the sheet and
use j and k, or the mouse wheel, to scroll.

## Configuration

Colours, spring tuning, the edge and the sheet size come from the
configuration file. Appearance and animation changes are picked up while
running; the edge is fixed until restart.

## Recording

Start the demo with --record to write every input to a trace file, then feed
the file to sancho replay to see the exact sequence of animation targets the
sheet produced.
`

const sheetMarkdown = `## Sheet

Grab me and drag toward the edge.

Press **o** to toggle, **esc** to close, **?** for help.
`
