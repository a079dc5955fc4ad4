package markup

// Stylesheet classes: d=date, i=my info, j=info, c=container, cm=my container,
// me=my text, g=my SMS text, n=name, e=emoji.
const (
	ClassDate        = "d"
	ClassMyInfo      = "i"
	ClassInfo        = "j"
	ClassContainer   = "c"
	ClassMyContainer = "cm"
	ClassMyText      = "me"
	ClassMySMSText   = "g"
	ClassName        = "n"
	ClassEmoji       = "e"
)

const (
	DayRule = "<hr>"

	AudioSourceType = "audio/x-m4a"
	DefaultWidth    = 300
	PayloadWidth    = 32
)

const Head = `
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
.d   {
    background-color: #ffffff;
    color: #505050;
    font-size: 70%;
    margin-top: 20px;
    margin-bottom: 0px;
    margin-left: 400px;
    margin-right: 10px;
}
.i   {
    background-color: #ffffff;
    color: #505050;
    font-size: 70%;
    font-style: italic;
    margin-top: 0px;
    margin-bottom: 0px;
    margin-left: 250px;
    margin-right: 10px;
}
.j   {
    background-color: #ffffff;
    color: #505050;
    font-size: 70%;
    font-style: italic;
    margin-top: 0px;
    margin-bottom: 0px;
    margin-left: 0px;
    margin-right: 10px;
}
.c   {
    margin-top: 5px;
    margin-right: 300px;
}
.cm  {
    margin-top: 0px;
    margin-left: 250px;
    margin-right: 10px;
}
.me  {
    background-color: #1b86fd;
    color: #ffffff;
    font-size: 80%;
    font-family: verdana;
    width: fit-content;
    margin-left: auto;
}
.g   {
    background-color: #2dbf4f;
    color: #ffffff;
    font-size: 80%;
    font-family: verdana;
    width: fit-content;
    margin-left: auto;
}
.n   {
    background-color: #ffffff;
    color: #505050;
    font-size: 70%;
    margin-top: 0px;
    margin-bottom: 0px;
    margin-left: 40px;
}
.e   {
    font-size: 120%;
}
p    {
    background-color: #e6e6e6;
    border-radius: 15px;
    font-size: 80%;
    color: #000000;
    font-family: verdana;
    padding: 5px;
    width: fit-content;
}
</style>
</head>
<body>

`

const Tail = `

</body>
</html>
`
